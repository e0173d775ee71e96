package repository

import (
	"context"

	"blognest-api/internal/model"
	"blognest-api/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	Create(ctx context.Context, msg model.PrivateMessage) (model.PrivateMessage, error)
	Detail(ctx context.Context, id string) (model.PrivateMessage, error)
	// Page returns the viewer's visible slice of the conversation,
	// newest first.
	Page(ctx context.Context, opts PageOptions) ([]model.PrivateMessage, paginator.Paginator, error)
	// History returns the newest limit visible messages in ascending
	// send order, for the stream's initial snapshot.
	History(ctx context.Context, key model.ConversationKey, viewerID string, limit int) ([]model.PrivateMessage, error)
	SetRecalled(ctx context.Context, id string) error
	// SetDeletedFor flips the per-participant delete flag for one side.
	SetDeletedFor(ctx context.Context, id string, bySender bool) error
	MarkConversationRead(ctx context.Context, key model.ConversationKey, readerID string) error
	CountUnreadTotal(ctx context.Context, userID string) (int64, error)
	// HasReply reports whether replierID has ever sent a message to userID.
	HasReply(ctx context.Context, userID, replierID string) (bool, error)
	Summaries(ctx context.Context, userID string) ([]model.ConversationSummary, error)
}
