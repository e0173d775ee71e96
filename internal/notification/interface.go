package notification

import (
	"context"

	"blognest-api/internal/model"
	"blognest-api/internal/realtime"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Subscribe opens an SSE channel for the user, seeded with the
	// connected frame and the pending friend request count.
	Subscribe(ctx context.Context, sc model.Scope) (*realtime.Channel, error)
	// Send persists (durable types) and pushes a notification event.
	Send(ctx context.Context, ip SendInput) (model.NotificationEvent, error)
	Get(ctx context.Context, sc model.Scope, ip GetInput) (GetOutput, error)
	UnreadCount(ctx context.Context, sc model.Scope) (int64, error)
	UnreadStats(ctx context.Context, sc model.Scope) (map[string]int64, error)
	MarkRead(ctx context.Context, sc model.Scope, id string) error
	MarkAllRead(ctx context.Context, sc model.Scope, ip MarkAllReadInput) error
	Unregister(ch *realtime.Channel)
}

// PendingRequestCounter reports how many unresolved friend requests a
// user has. The friend usecase implements it.
type PendingRequestCounter interface {
	CountPending(ctx context.Context, userID string) (int64, error)
}

// UserDirectory resolves sender profiles for event enrichment.
type UserDirectory interface {
	ListByIDs(ctx context.Context, ids []string) ([]model.User, error)
}
