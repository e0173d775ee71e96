package repository

import (
	"context"

	"blognest-api/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	CreateRequest(ctx context.Context, req model.FriendRequest) (model.FriendRequest, error)
	RequestDetail(ctx context.Context, id string) (model.FriendRequest, error)
	// PendingBetween finds an unresolved request in either direction.
	PendingBetween(ctx context.Context, userA, userB string) (model.FriendRequest, error)
	PendingFor(ctx context.Context, receiverID string) ([]model.FriendRequest, error)
	CountPending(ctx context.Context, receiverID string) (int64, error)
	ResolveRequest(ctx context.Context, id string, status model.FriendRequestStatus) error

	CreateFriendship(ctx context.Context, userA, userB string) error
	DeleteFriendship(ctx context.Context, userA, userB string) error
	IsFriend(ctx context.Context, userA, userB string) (bool, error)

	CreateFollow(ctx context.Context, followerID, followeeID string) (created bool, err error)
	DeleteFollow(ctx context.Context, followerID, followeeID string) (deleted bool, err error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	FollowCounts(ctx context.Context, userID string) (followers, following int64, err error)
}
