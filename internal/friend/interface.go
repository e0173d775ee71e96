package friend

import (
	"context"

	"blognest-api/internal/model"
	"blognest-api/internal/notification"
)

//go:generate mockery --name UseCase
type UseCase interface {
	SendRequest(ctx context.Context, sc model.Scope, ip SendRequestInput) (model.FriendRequest, error)
	// Respond accepts or rejects a pending request. Receiver only.
	Respond(ctx context.Context, sc model.Scope, ip RespondInput) error
	DeleteFriend(ctx context.Context, sc model.Scope, friendID string) error
	Pending(ctx context.Context, sc model.Scope) ([]PendingRequest, error)
	// CountPending implements notification.PendingRequestCounter.
	CountPending(ctx context.Context, userID string) (int64, error)
	// IsFriend implements message.FriendChecker.
	IsFriend(ctx context.Context, userA, userB string) (bool, error)

	Follow(ctx context.Context, sc model.Scope, targetID string) error
	Unfollow(ctx context.Context, sc model.Scope, targetID string) error
	FollowCounts(ctx context.Context, userID string) (FollowCounts, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

// Notifier pushes notification events for friend activity. The
// notification usecase implements it.
type Notifier interface {
	Send(ctx context.Context, ip notification.SendInput) (model.NotificationEvent, error)
}

// UserDirectory resolves sender profiles for the pending listing.
type UserDirectory interface {
	ListByIDs(ctx context.Context, ids []string) ([]model.User, error)
}
