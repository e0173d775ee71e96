package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"blognest-api/internal/message"
	"blognest-api/internal/message/repository"
	"blognest-api/internal/model"
	"blognest-api/internal/realtime"
	"blognest-api/pkg/paginator"
)

func (uc *implUsecase) SendText(ctx context.Context, sc model.Scope, ip message.SendTextInput) (model.MessageEvent, error) {
	if strings.TrimSpace(ip.Content) == "" {
		return model.MessageEvent{}, message.ErrFieldRequired
	}
	if err := uc.validateReceiver(sc, ip.ReceiverID); err != nil {
		return model.MessageEvent{}, err
	}

	return uc.send(ctx, model.PrivateMessage{
		SenderID:   sc.UserID,
		ReceiverID: ip.ReceiverID,
		Type:       model.MessageTypeText,
		Content:    ip.Content,
	})
}

func (uc *implUsecase) SendMedia(ctx context.Context, sc model.Scope, ip message.SendMediaInput) (model.MessageEvent, error) {
	if !ip.Type.IsMedia() {
		return model.MessageEvent{}, message.ErrUnsupportedMediaType
	}
	if ip.MediaURL == "" {
		return model.MessageEvent{}, message.ErrFieldRequired
	}
	if err := uc.validateReceiver(sc, ip.ReceiverID); err != nil {
		return model.MessageEvent{}, err
	}

	if uc.cfg.MediaRequiresTrust {
		allowed, err := uc.mediaAllowed(ctx, sc.UserID, ip.ReceiverID)
		if err != nil {
			return model.MessageEvent{}, err
		}
		if !allowed {
			return model.MessageEvent{}, message.ErrMediaNotAllowed
		}
	}

	mediaURL := ip.MediaURL
	return uc.send(ctx, model.PrivateMessage{
		SenderID:   sc.UserID,
		ReceiverID: ip.ReceiverID,
		Type:       ip.Type,
		Content:    ip.Content,
		MediaURL:   &mediaURL,
	})
}

func (uc *implUsecase) Recall(ctx context.Context, sc model.Scope, messageID string) error {
	msg, err := uc.detail(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != sc.UserID {
		return message.ErrNotSender
	}
	if uc.clock().Sub(msg.CreatedAt) > uc.cfg.RecallWindow {
		return message.ErrRecallWindowExpired
	}

	if err := uc.repo.SetRecalled(ctx, messageID); err != nil {
		if err == repository.ErrNotFound {
			return message.ErrMessageNotFound
		}
		uc.l.Errorf(ctx, "internal.message.usecase.Recall.SetRecalled: %v", err)
		return err
	}

	// Re-broadcast the blanked message so both sides replace it in
	// place instead of just receiving an ID.
	msg.Recalled = true
	ev := msg.ToEvent()

	key := model.NewConversationKey(msg.SenderID, msg.ReceiverID)
	uc.broadcast(ctx, key, model.ChatEvent{
		Kind:      model.ChatEventRecall,
		MessageID: messageID,
		UserID:    sc.UserID,
		Message:   &ev,
	})
	return nil
}

func (uc *implUsecase) Delete(ctx context.Context, sc model.Scope, messageID string) error {
	msg, err := uc.detail(ctx, messageID)
	if err != nil {
		return err
	}

	switch sc.UserID {
	case msg.SenderID:
		err = uc.repo.SetDeletedFor(ctx, messageID, true)
	case msg.ReceiverID:
		err = uc.repo.SetDeletedFor(ctx, messageID, false)
	default:
		return message.ErrNotParticipant
	}
	if err != nil {
		if err == repository.ErrNotFound {
			return message.ErrMessageNotFound
		}
		uc.l.Errorf(ctx, "internal.message.usecase.Delete.SetDeletedFor: %v", err)
		return err
	}

	// The other participant keeps the message; no broadcast.
	return nil
}

func (uc *implUsecase) ConversationPage(ctx context.Context, sc model.Scope, ip message.PageInput) (message.PageOutput, error) {
	if ip.OtherUserID == "" {
		return message.PageOutput{}, message.ErrFieldRequired
	}

	msgs, pag, err := uc.repo.Page(ctx, repository.PageOptions{
		Key:           model.NewConversationKey(sc.UserID, ip.OtherUserID),
		ViewerID:      sc.UserID,
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.ConversationPage.Page: %v", err)
		return message.PageOutput{}, err
	}

	events := make([]model.MessageEvent, len(msgs))
	for i, m := range msgs {
		events[i] = m.ToEvent()
	}
	return message.PageOutput{Messages: events, Paginator: pag}, nil
}

func (uc *implUsecase) SubscribeConversation(ctx context.Context, sc model.Scope, otherUserID string) (*realtime.Channel, error) {
	if otherUserID == "" {
		return nil, message.ErrFieldRequired
	}
	key := model.NewConversationKey(sc.UserID, otherUserID)

	history, err := uc.repo.History(ctx, key, sc.UserID, uc.cfg.HistoryPageSize)
	if err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.SubscribeConversation.History: %v", err)
		return nil, err
	}

	events := make([]model.MessageEvent, len(history))
	for i, m := range history {
		events[i] = m.ToEvent()
	}
	data, err := json.Marshal(model.ChatEvent{
		Kind:     model.ChatEventHistory,
		Messages: events,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.SubscribeConversation.Marshal: %v", err)
		return nil, err
	}

	ch, err := uc.conversations.Subscribe(key, sc.UserID, realtime.Frame{
		Event: realtime.EventMessage,
		Data:  data,
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.message.usecase.SubscribeConversation.Subscribe: %v", err)
		return nil, err
	}
	return ch, nil
}

func (uc *implUsecase) Unregister(ch *realtime.Channel) {
	uc.conversations.Unregister(ch)
}

func (uc *implUsecase) MarkConversationRead(ctx context.Context, sc model.Scope, otherUserID string) error {
	if otherUserID == "" {
		return message.ErrFieldRequired
	}
	key := model.NewConversationKey(sc.UserID, otherUserID)

	if err := uc.repo.MarkConversationRead(ctx, key, sc.UserID); err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.MarkConversationRead: %v", err)
		return err
	}

	uc.broadcast(ctx, key, model.ChatEvent{
		Kind:   model.ChatEventRead,
		UserID: sc.UserID,
	})
	return nil
}

func (uc *implUsecase) UnreadTotal(ctx context.Context, sc model.Scope) (int64, error) {
	count, err := uc.repo.CountUnreadTotal(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.UnreadTotal: %v", err)
		return 0, err
	}
	return count, nil
}

func (uc *implUsecase) ConversationSummaries(ctx context.Context, sc model.Scope, ip message.SummariesInput) (message.SummariesOutput, error) {
	summaries, err := uc.repo.Summaries(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.ConversationSummaries: %v", err)
		return message.SummariesOutput{}, err
	}

	// The repository returns the full inbox newest-first; the page
	// window applies in memory and only the page gets enriched.
	page, pag := paginator.PaginateSlice(summaries, ip.PaginateQuery)
	return message.SummariesOutput{
		Summaries: uc.enrichSummaries(ctx, page),
		Paginator: pag,
	}, nil
}

// send persists the message, broadcasts it to the conversation stream
// and pushes a transient notification to the receiver. Private message
// notifications never reach the durable notification log; the message
// table is their system of record.
func (uc *implUsecase) send(ctx context.Context, msg model.PrivateMessage) (model.MessageEvent, error) {
	stored, err := uc.repo.Create(ctx, msg)
	if err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.send.Create: %v", err)
		return model.MessageEvent{}, err
	}

	key := model.NewConversationKey(stored.SenderID, stored.ReceiverID)
	ev := stored.ToEvent()
	uc.broadcast(ctx, key, model.ChatEvent{
		Kind:    model.ChatEventMessage,
		Message: &ev,
	})

	preview := stored.Content
	if stored.Type.IsMedia() {
		preview = string(stored.Type)
	}
	if _, err := uc.publisher.PublishNotification(ctx, model.NotificationEvent{
		Type:        model.NotificationPrivateMessage,
		SenderID:    stored.SenderID,
		ReceiverID:  stored.ReceiverID,
		Message:     preview,
		ReferenceID: stored.ID,
		CreatedAt:   stored.CreatedAt,
	}); err != nil {
		uc.l.Warnf(ctx, "internal.message.usecase.send.PublishNotification: %v", err)
	}

	return ev, nil
}

func (uc *implUsecase) broadcast(ctx context.Context, key model.ConversationKey, ev model.ChatEvent) {
	if err := uc.publisher.PublishConversation(ctx, key, ev); err != nil {
		uc.l.Warnf(ctx, "internal.message.usecase.broadcast: %v", err)
	}
}

func (uc *implUsecase) detail(ctx context.Context, messageID string) (model.PrivateMessage, error) {
	msg, err := uc.repo.Detail(ctx, messageID)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.PrivateMessage{}, message.ErrMessageNotFound
		}
		uc.l.Errorf(ctx, "internal.message.usecase.detail: %v", err)
		return model.PrivateMessage{}, err
	}
	return msg, nil
}

func (uc *implUsecase) validateReceiver(sc model.Scope, receiverID string) error {
	if receiverID == "" {
		return message.ErrFieldRequired
	}
	if receiverID == sc.UserID {
		return message.ErrSelfMessage
	}
	return nil
}

// mediaAllowed implements the trust gate: friends always may exchange
// media, otherwise the receiver must have messaged the sender before.
func (uc *implUsecase) mediaAllowed(ctx context.Context, senderID, receiverID string) (bool, error) {
	if uc.friends != nil {
		isFriend, err := uc.friends.IsFriend(ctx, senderID, receiverID)
		if err != nil {
			uc.l.Errorf(ctx, "internal.message.usecase.mediaAllowed.IsFriend: %v", err)
			return false, err
		}
		if isFriend {
			return true, nil
		}
	}

	hasReply, err := uc.repo.HasReply(ctx, senderID, receiverID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.mediaAllowed.HasReply: %v", err)
		return false, err
	}
	return hasReply, nil
}

func (uc *implUsecase) enrichSummaries(ctx context.Context, summaries []model.ConversationSummary) []model.ConversationSummary {
	if uc.users == nil || len(summaries) == 0 {
		return summaries
	}

	ids := make([]string, len(summaries))
	for i, s := range summaries {
		ids[i] = s.PartnerID
	}
	users, err := uc.users.ListByIDs(ctx, ids)
	if err != nil {
		uc.l.Warnf(ctx, "internal.message.usecase.enrichSummaries.ListByIDs: %v", err)
		return summaries
	}

	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i, s := range summaries {
		if u, ok := byID[s.PartnerID]; ok {
			summaries[i].PartnerNickname = u.DisplayName()
			summaries[i].PartnerAvatar = u.Avatar()
		}
	}
	return summaries
}
