package usecase

import (
	"context"

	"blognest-api/internal/friend"
	"blognest-api/internal/friend/repository"
	"blognest-api/internal/model"
	"blognest-api/internal/notification"
)

func (uc *implUsecase) SendRequest(ctx context.Context, sc model.Scope, ip friend.SendRequestInput) (model.FriendRequest, error) {
	if ip.ReceiverID == "" {
		return model.FriendRequest{}, friend.ErrFieldRequired
	}
	if ip.ReceiverID == sc.UserID {
		return model.FriendRequest{}, friend.ErrSelfAction
	}

	isFriend, err := uc.repo.IsFriend(ctx, sc.UserID, ip.ReceiverID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.SendRequest.IsFriend: %v", err)
		return model.FriendRequest{}, err
	}
	if isFriend {
		return model.FriendRequest{}, friend.ErrAlreadyFriends
	}

	if _, err := uc.repo.PendingBetween(ctx, sc.UserID, ip.ReceiverID); err == nil {
		return model.FriendRequest{}, friend.ErrRequestPending
	} else if err != repository.ErrNotFound {
		uc.l.Errorf(ctx, "internal.friend.usecase.SendRequest.PendingBetween: %v", err)
		return model.FriendRequest{}, err
	}

	req, err := uc.repo.CreateRequest(ctx, model.FriendRequest{
		SenderID:   sc.UserID,
		ReceiverID: ip.ReceiverID,
		Message:    ip.Message,
		Status:     model.FriendRequestPending,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.SendRequest.CreateRequest: %v", err)
		return model.FriendRequest{}, err
	}

	uc.notify(ctx, notification.SendInput{
		Type:        string(model.NotificationFriendRequest),
		SenderID:    sc.UserID,
		ReceiverID:  ip.ReceiverID,
		Message:     ip.Message,
		ReferenceID: req.ID,
	})
	return req, nil
}

func (uc *implUsecase) Respond(ctx context.Context, sc model.Scope, ip friend.RespondInput) error {
	req, err := uc.repo.RequestDetail(ctx, ip.RequestID)
	if err != nil {
		if err == repository.ErrNotFound {
			return friend.ErrRequestNotFound
		}
		uc.l.Errorf(ctx, "internal.friend.usecase.Respond.RequestDetail: %v", err)
		return err
	}
	if req.ReceiverID != sc.UserID {
		return friend.ErrNotReceiver
	}
	if req.Status != model.FriendRequestPending {
		return friend.ErrAlreadyResolved
	}

	status := model.FriendRequestRejected
	eventType := model.NotificationFriendRequestRejected
	if ip.Accept {
		status = model.FriendRequestAccepted
		eventType = model.NotificationFriendRequestAccepted
	}

	if err := uc.repo.ResolveRequest(ctx, req.ID, status); err != nil {
		if err == repository.ErrNotFound {
			return friend.ErrAlreadyResolved
		}
		uc.l.Errorf(ctx, "internal.friend.usecase.Respond.ResolveRequest: %v", err)
		return err
	}

	if ip.Accept {
		if err := uc.repo.CreateFriendship(ctx, req.SenderID, req.ReceiverID); err != nil {
			uc.l.Errorf(ctx, "internal.friend.usecase.Respond.CreateFriendship: %v", err)
			return err
		}
	}

	uc.notify(ctx, notification.SendInput{
		Type:        string(eventType),
		SenderID:    sc.UserID,
		ReceiverID:  req.SenderID,
		ReferenceID: req.ID,
	})
	return nil
}

func (uc *implUsecase) DeleteFriend(ctx context.Context, sc model.Scope, friendID string) error {
	if friendID == "" {
		return friend.ErrFieldRequired
	}
	if friendID == sc.UserID {
		return friend.ErrSelfAction
	}

	if err := uc.repo.DeleteFriendship(ctx, sc.UserID, friendID); err != nil {
		if err == repository.ErrNotFound {
			return friend.ErrNotFriends
		}
		uc.l.Errorf(ctx, "internal.friend.usecase.DeleteFriend: %v", err)
		return err
	}

	uc.notify(ctx, notification.SendInput{
		Type:       string(model.NotificationFriendDelete),
		SenderID:   sc.UserID,
		ReceiverID: friendID,
	})
	return nil
}

func (uc *implUsecase) Pending(ctx context.Context, sc model.Scope) ([]friend.PendingRequest, error) {
	requests, err := uc.repo.PendingFor(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.Pending: %v", err)
		return nil, err
	}
	return uc.enrich(ctx, requests), nil
}

func (uc *implUsecase) CountPending(ctx context.Context, userID string) (int64, error) {
	count, err := uc.repo.CountPending(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.CountPending: %v", err)
		return 0, err
	}
	return count, nil
}

func (uc *implUsecase) IsFriend(ctx context.Context, userA, userB string) (bool, error) {
	isFriend, err := uc.repo.IsFriend(ctx, userA, userB)
	if err != nil {
		uc.l.Errorf(ctx, "internal.friend.usecase.IsFriend: %v", err)
		return false, err
	}
	return isFriend, nil
}

// notify pushes a friend activity event. Notification failure never
// rolls back the relationship change.
func (uc *implUsecase) notify(ctx context.Context, ip notification.SendInput) {
	if uc.notifier == nil {
		return
	}
	if _, err := uc.notifier.Send(ctx, ip); err != nil {
		uc.l.Warnf(ctx, "internal.friend.usecase.notify: %v", err)
	}
}

func (uc *implUsecase) enrich(ctx context.Context, requests []model.FriendRequest) []friend.PendingRequest {
	res := make([]friend.PendingRequest, len(requests))
	for i, req := range requests {
		res[i] = friend.PendingRequest{Request: req}
	}
	if uc.users == nil || len(requests) == 0 {
		return res
	}

	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.SenderID
	}
	users, err := uc.users.ListByIDs(ctx, ids)
	if err != nil {
		uc.l.Warnf(ctx, "internal.friend.usecase.enrich.ListByIDs: %v", err)
		return res
	}

	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range res {
		if u, ok := byID[res[i].Request.SenderID]; ok {
			res[i].SenderNickname = u.DisplayName()
			res[i].SenderAvatar = u.Avatar()
		}
	}
	return res
}
