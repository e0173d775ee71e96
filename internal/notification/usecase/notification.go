package usecase

import (
	"context"
	"encoding/json"

	"blognest-api/internal/model"
	"blognest-api/internal/notification"
	"blognest-api/internal/notification/repository"
	"blognest-api/internal/realtime"
)

func (uc *implUsecase) Subscribe(ctx context.Context, sc model.Scope) (*realtime.Channel, error) {
	var pendingCount int64
	if uc.pending != nil {
		count, err := uc.pending.CountPending(ctx, sc.UserID)
		if err != nil {
			// The stream still opens; the badge just starts at zero.
			uc.l.Warnf(ctx, "internal.notification.usecase.Subscribe.CountPending: %v", err)
		} else {
			pendingCount = count
		}
	}

	data, err := json.Marshal(notification.ConnectedPayload{
		Type:            model.NotificationSystem,
		Message:         "connected",
		PendingRequests: pendingCount,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Subscribe.Marshal: %v", err)
		return nil, err
	}

	ch, err := uc.registry.Subscribe(sc.UserID, realtime.Frame{
		Event: realtime.EventMessage,
		Data:  data,
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.notification.usecase.Subscribe.Register: %v", err)
		return nil, err
	}
	return ch, nil
}

func (uc *implUsecase) Unregister(ch *realtime.Channel) {
	uc.registry.Unregister(ch)
}

func (uc *implUsecase) Send(ctx context.Context, ip notification.SendInput) (model.NotificationEvent, error) {
	if ip.ReceiverID == "" {
		return model.NotificationEvent{}, notification.ErrFieldRequired
	}

	ev := model.NotificationEvent{
		Type:             model.NormalizeNotificationType(ip.Type),
		SenderID:         ip.SenderID,
		ReceiverID:       ip.ReceiverID,
		Message:          ip.Message,
		ReferenceID:      ip.ReferenceID,
		ReferenceExtraID: ip.ReferenceExtraID,
	}

	// Enrich before composing so the default message can use the
	// sender's nickname. The composed text is persisted with the row,
	// not rebuilt on read.
	ev = uc.enrich(ctx, []model.NotificationEvent{ev})[0]
	if ev.Message == "" {
		name := ev.SenderNickname
		if name == "" {
			name = ev.SenderID
		}
		ev.Message = ev.Type.DefaultMessage(name)
	}

	out, err := uc.publisher.PublishNotification(ctx, ev)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Send.Publish: %v", err)
		return model.NotificationEvent{}, err
	}
	return out, nil
}

func (uc *implUsecase) Get(ctx context.Context, sc model.Scope, ip notification.GetInput) (notification.GetOutput, error) {
	notifications, pag, err := uc.repo.Get(ctx, repository.GetOptions{
		Filter: repository.Filter{
			ReceiverID: sc.UserID,
			Types:      ip.Types,
			UnreadOnly: ip.UnreadOnly,
		},
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Get.repo.Get: %v", err)
		return notification.GetOutput{}, err
	}

	events := make([]model.NotificationEvent, len(notifications))
	for i, n := range notifications {
		events[i] = toEvent(n)
	}

	return notification.GetOutput{
		Events:    uc.enrich(ctx, events),
		Paginator: pag,
	}, nil
}

func (uc *implUsecase) UnreadCount(ctx context.Context, sc model.Scope) (int64, error) {
	count, err := uc.repo.CountUnread(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.UnreadCount: %v", err)
		return 0, err
	}
	return count, nil
}

func (uc *implUsecase) UnreadStats(ctx context.Context, sc model.Scope) (map[string]int64, error) {
	stats := make(map[string]int64, 5)

	likes, err := uc.repo.CountUnreadByTypes(ctx, sc.UserID, model.LikeNotificationTypes)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.UnreadStats.Likes: %v", err)
		return nil, err
	}
	stats[model.UnreadStatLikes] = likes

	comments, err := uc.repo.CountUnreadByTypes(ctx, sc.UserID, model.CommentNotificationTypes)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.UnreadStats.Comments: %v", err)
		return nil, err
	}
	stats[model.UnreadStatComments] = comments

	follows, err := uc.repo.CountUnreadByTypes(ctx, sc.UserID, model.FollowNotificationTypes)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.UnreadStats.Follow: %v", err)
		return nil, err
	}
	stats[model.UnreadStatFollow] = follows

	var requests int64
	if uc.pending != nil {
		requests, err = uc.pending.CountPending(ctx, sc.UserID)
		if err != nil {
			uc.l.Errorf(ctx, "internal.notification.usecase.UnreadStats.Pending: %v", err)
			return nil, err
		}
	}
	stats[model.UnreadStatRequests] = requests

	all, err := uc.repo.CountUnread(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.UnreadStats.All: %v", err)
		return nil, err
	}
	stats[model.UnreadStatAll] = all + requests

	return stats, nil
}

func (uc *implUsecase) MarkRead(ctx context.Context, sc model.Scope, id string) error {
	n, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notification.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkRead.Detail: %v", err)
		return err
	}
	if n.ReceiverID != sc.UserID {
		return notification.ErrNotOwner
	}

	if err := uc.repo.MarkRead(ctx, sc.UserID, id); err != nil {
		if err == repository.ErrNotFound {
			return notification.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkRead.repo.MarkRead: %v", err)
		return err
	}
	return nil
}

func (uc *implUsecase) MarkAllRead(ctx context.Context, sc model.Scope, ip notification.MarkAllReadInput) error {
	if err := uc.repo.MarkAllRead(ctx, sc.UserID, ip.Types); err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkAllRead: %v", err)
		return err
	}
	return nil
}

// enrich attaches sender nickname and avatar to each event. A lookup
// failure degrades to unenriched events rather than failing the call.
func (uc *implUsecase) enrich(ctx context.Context, events []model.NotificationEvent) []model.NotificationEvent {
	if uc.users == nil || len(events) == 0 {
		return events
	}

	idSet := make(map[string]struct{}, len(events))
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.SenderID == "" {
			continue
		}
		if _, ok := idSet[ev.SenderID]; !ok {
			idSet[ev.SenderID] = struct{}{}
			ids = append(ids, ev.SenderID)
		}
	}
	if len(ids) == 0 {
		return events
	}

	users, err := uc.users.ListByIDs(ctx, ids)
	if err != nil {
		uc.l.Warnf(ctx, "internal.notification.usecase.enrich.ListByIDs: %v", err)
		return events
	}

	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i, ev := range events {
		if u, ok := byID[ev.SenderID]; ok {
			events[i].SenderNickname = u.DisplayName()
			events[i].SenderAvatar = u.Avatar()
		}
	}
	return events
}

func toEvent(n model.Notification) model.NotificationEvent {
	ev := model.NotificationEvent{
		ID:         n.ID,
		Type:       n.Type,
		SenderID:   n.SenderID,
		ReceiverID: n.ReceiverID,
		Message:    n.Message,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
	if n.ReferenceID != nil {
		ev.ReferenceID = *n.ReferenceID
	}
	if n.ReferenceExtraID != nil {
		ev.ReferenceExtraID = *n.ReferenceExtraID
	}
	return ev
}
