package message

import (
	"context"

	"blognest-api/internal/model"
	"blognest-api/internal/realtime"
)

//go:generate mockery --name UseCase
type UseCase interface {
	SendText(ctx context.Context, sc model.Scope, ip SendTextInput) (model.MessageEvent, error)
	// SendMedia requires an established relationship: the pair must be
	// friends or the receiver must have replied to the sender before.
	SendMedia(ctx context.Context, sc model.Scope, ip SendMediaInput) (model.MessageEvent, error)
	UploadMedia(ctx context.Context, sc model.Scope, ip UploadMediaInput) (UploadMediaOutput, error)
	// Recall withdraws a message for both sides. Sender only, within
	// the recall window of the send time.
	Recall(ctx context.Context, sc model.Scope, messageID string) error
	// Delete hides a message from the caller's own view. The other
	// participant keeps it and nothing is broadcast.
	Delete(ctx context.Context, sc model.Scope, messageID string) error
	ConversationPage(ctx context.Context, sc model.Scope, ip PageInput) (PageOutput, error)
	// SubscribeConversation opens a chat stream seeded with the most
	// recent history snapshot.
	SubscribeConversation(ctx context.Context, sc model.Scope, otherUserID string) (*realtime.Channel, error)
	Unregister(ch *realtime.Channel)
	MarkConversationRead(ctx context.Context, sc model.Scope, otherUserID string) error
	UnreadTotal(ctx context.Context, sc model.Scope) (int64, error)
	ConversationSummaries(ctx context.Context, sc model.Scope, ip SummariesInput) (SummariesOutput, error)
}

// FriendChecker reports whether two users are friends. The friend
// usecase implements it.
type FriendChecker interface {
	IsFriend(ctx context.Context, userA, userB string) (bool, error)
}

// UserDirectory resolves partner profiles for the inbox listing.
type UserDirectory interface {
	ListByIDs(ctx context.Context, ids []string) ([]model.User, error)
}
