package usecase

import (
	"context"

	"blognest-api/internal/friend"
	"blognest-api/internal/model"
	"blognest-api/internal/notification"
)

func (uc *implUsecase) Follow(ctx context.Context, sc model.Scope, targetID string) error {
	if targetID == "" {
		return friend.ErrFieldRequired
	}
	if targetID == sc.UserID {
		return friend.ErrSelfAction
	}

	created, err := uc.repo.CreateFollow(ctx, sc.UserID, targetID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.Follow: %v", err)
		return err
	}
	if !created {
		// Already following; idempotent and silent.
		return nil
	}

	uc.notify(ctx, notification.SendInput{
		Type:       string(model.NotificationFollow),
		SenderID:   sc.UserID,
		ReceiverID: targetID,
	})
	return nil
}

func (uc *implUsecase) Unfollow(ctx context.Context, sc model.Scope, targetID string) error {
	if targetID == "" {
		return friend.ErrFieldRequired
	}
	if targetID == sc.UserID {
		return friend.ErrSelfAction
	}

	deleted, err := uc.repo.DeleteFollow(ctx, sc.UserID, targetID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.Unfollow: %v", err)
		return err
	}
	if !deleted {
		return nil
	}

	uc.notify(ctx, notification.SendInput{
		Type:       string(model.NotificationUnfollow),
		SenderID:   sc.UserID,
		ReceiverID: targetID,
	})
	return nil
}

func (uc *implUsecase) FollowCounts(ctx context.Context, userID string) (friend.FollowCounts, error) {
	followers, following, err := uc.repo.FollowCounts(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.FollowCounts: %v", err)
		return friend.FollowCounts{}, err
	}
	return friend.FollowCounts{Followers: followers, Following: following}, nil
}

func (uc *implUsecase) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	following, err := uc.repo.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.IsFollowing: %v", err)
		return false, err
	}
	return following, nil
}
