package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"blognest-api/config"
	"blognest-api/internal/message"
	"blognest-api/internal/message/repository"
	"blognest-api/internal/model"
	"blognest-api/internal/realtime"
	"blognest-api/pkg/paginator"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

type fakeRepo struct {
	messages map[string]model.PrivateMessage
	nextID   int
	now      time.Time

	recalled   []string
	deletedFor []struct {
		id       string
		bySender bool
	}
	hasReply  bool
	summaries []model.ConversationSummary
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		messages: make(map[string]model.PrivateMessage),
		nextID:   1,
		now:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) Create(_ context.Context, msg model.PrivateMessage) (model.PrivateMessage, error) {
	msg.ID = fmt.Sprintf("msg-%d", r.nextID)
	msg.CreatedAt = r.now
	r.nextID++
	r.messages[msg.ID] = msg
	return msg, nil
}

func (r *fakeRepo) Detail(_ context.Context, id string) (model.PrivateMessage, error) {
	msg, ok := r.messages[id]
	if !ok {
		return model.PrivateMessage{}, repository.ErrNotFound
	}
	return msg, nil
}

func (r *fakeRepo) Page(_ context.Context, _ repository.PageOptions) ([]model.PrivateMessage, paginator.Paginator, error) {
	return nil, paginator.Paginator{}, nil
}

func (r *fakeRepo) History(_ context.Context, _ model.ConversationKey, _ string, _ int) ([]model.PrivateMessage, error) {
	var msgs []model.PrivateMessage
	for _, m := range r.messages {
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (r *fakeRepo) SetRecalled(_ context.Context, id string) error {
	msg, ok := r.messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	msg.Recalled = true
	r.messages[id] = msg
	r.recalled = append(r.recalled, id)
	return nil
}

func (r *fakeRepo) SetDeletedFor(_ context.Context, id string, bySender bool) error {
	if _, ok := r.messages[id]; !ok {
		return repository.ErrNotFound
	}
	r.deletedFor = append(r.deletedFor, struct {
		id       string
		bySender bool
	}{id, bySender})
	return nil
}

func (r *fakeRepo) MarkConversationRead(_ context.Context, _ model.ConversationKey, _ string) error {
	return nil
}

func (r *fakeRepo) CountUnreadTotal(_ context.Context, _ string) (int64, error) {
	return int64(len(r.messages)), nil
}

func (r *fakeRepo) HasReply(_ context.Context, _, _ string) (bool, error) {
	return r.hasReply, nil
}

func (r *fakeRepo) Summaries(_ context.Context, _ string) ([]model.ConversationSummary, error) {
	return r.summaries, nil
}

type fakeFriends struct {
	isFriend bool
}

func (f *fakeFriends) IsFriend(_ context.Context, _, _ string) (bool, error) {
	return f.isFriend, nil
}

type fakeStore struct {
	appended []model.Notification
}

func (s *fakeStore) Append(_ context.Context, n model.Notification) (model.Notification, error) {
	n.ID = "durable-id"
	s.appended = append(s.appended, n)
	return n, nil
}

type captureDelivery struct {
	userPayloads [][]byte
	chatPayloads [][]byte
}

func (d *captureDelivery) DeliverToUser(_ context.Context, _ string, data []byte) error {
	d.userPayloads = append(d.userPayloads, data)
	return nil
}

func (d *captureDelivery) DeliverToConversation(_ context.Context, _ model.ConversationKey, data []byte) error {
	d.chatPayloads = append(d.chatPayloads, data)
	return nil
}

type fixture struct {
	uc       *implUsecase
	repo     *fakeRepo
	friends  *fakeFriends
	store    *fakeStore
	delivery *captureDelivery
}

func newFixture() *fixture {
	logger := &testLogger{}
	repo := newFakeRepo()
	friends := &fakeFriends{}
	store := &fakeStore{}
	delivery := &captureDelivery{}
	registry := realtime.NewRegistry(logger, 16, 0)
	conversations := realtime.NewConversationRegistry(logger, 16)
	publisher := realtime.NewPublisher(logger, store, delivery, registry)

	cfg := config.MessageConfig{
		RecallWindow:       2 * time.Minute,
		HistoryPageSize:    20,
		MediaRequiresTrust: true,
	}
	uc := New(logger, repo, publisher, conversations, friends, nil, nil, cfg, "test-bucket")
	uc.clock = func() time.Time { return repo.now }

	return &fixture{uc: uc, repo: repo, friends: friends, store: store, delivery: delivery}
}

func scopeFor(userID string) model.Scope {
	return model.Scope{UserID: userID, Username: userID, Role: "USER"}
}

func (f *fixture) lastChatEvent(t *testing.T) model.ChatEvent {
	t.Helper()
	if len(f.delivery.chatPayloads) == 0 {
		t.Fatal("No chat broadcast was sent")
	}
	var ev model.ChatEvent
	if err := json.Unmarshal(f.delivery.chatPayloads[len(f.delivery.chatPayloads)-1], &ev); err != nil {
		t.Fatalf("Broadcast payload is not a chat event: %v", err)
	}
	return ev
}

func TestSendTextBroadcastsAndNotifies(t *testing.T) {
	f := newFixture()

	ev, err := f.uc.SendText(context.Background(), scopeFor("alice"), message.SendTextInput{
		ReceiverID: "bob",
		Content:    "hello",
	})
	if err != nil {
		t.Fatalf("SendText failed: %v", err)
	}
	if ev.ID == "" || ev.Content != "hello" {
		t.Errorf("Unexpected event: %+v", ev)
	}

	chat := f.lastChatEvent(t)
	if chat.Kind != model.ChatEventMessage || chat.Message == nil {
		t.Errorf("Expected MESSAGE broadcast, got %+v", chat)
	}
	if len(f.delivery.userPayloads) != 1 {
		t.Errorf("Expected 1 receiver notification, got %d", len(f.delivery.userPayloads))
	}
	if len(f.store.appended) != 0 {
		t.Error("Chat notifications must not be written to the notification log")
	}
}

func TestSendTextValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.uc.SendText(ctx, scopeFor("alice"), message.SendTextInput{ReceiverID: "bob"}); err != message.ErrFieldRequired {
		t.Errorf("Empty content: expected ErrFieldRequired, got %v", err)
	}
	if _, err := f.uc.SendText(ctx, scopeFor("alice"), message.SendTextInput{Content: "hi"}); err != message.ErrFieldRequired {
		t.Errorf("Empty receiver: expected ErrFieldRequired, got %v", err)
	}
	if _, err := f.uc.SendText(ctx, scopeFor("alice"), message.SendTextInput{ReceiverID: "alice", Content: "hi"}); err != message.ErrSelfMessage {
		t.Errorf("Self message: expected ErrSelfMessage, got %v", err)
	}
}

func TestRecallWithinWindow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ev, err := f.uc.SendText(ctx, scopeFor("alice"), message.SendTextInput{ReceiverID: "bob", Content: "oops"})
	if err != nil {
		t.Fatalf("SendText failed: %v", err)
	}

	f.uc.clock = func() time.Time { return f.repo.now.Add(119 * time.Second) }
	if err := f.uc.Recall(ctx, scopeFor("alice"), ev.ID); err != nil {
		t.Fatalf("Recall inside the window failed: %v", err)
	}
	if len(f.repo.recalled) != 1 {
		t.Errorf("Expected message to be marked recalled")
	}

	chat := f.lastChatEvent(t)
	if chat.Kind != model.ChatEventRecall || chat.MessageID != ev.ID {
		t.Errorf("Expected RECALL broadcast for %s, got %+v", ev.ID, chat)
	}
	if chat.Message == nil {
		t.Fatal("RECALL broadcast must carry the updated message")
	}
	if !chat.Message.Recalled || chat.Message.ID != ev.ID {
		t.Errorf("Expected recalled message %s in broadcast, got %+v", ev.ID, chat.Message)
	}
	if chat.Message.Content != "" || chat.Message.MediaURL != "" {
		t.Errorf("Recalled broadcast must not expose content or media: %+v", chat.Message)
	}
}

func TestRecallAfterWindowExpires(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ev, err := f.uc.SendText(ctx, scopeFor("alice"), message.SendTextInput{ReceiverID: "bob", Content: "oops"})
	if err != nil {
		t.Fatalf("SendText failed: %v", err)
	}

	f.uc.clock = func() time.Time { return f.repo.now.Add(121 * time.Second) }
	if err := f.uc.Recall(ctx, scopeFor("alice"), ev.ID); err != message.ErrRecallWindowExpired {
		t.Errorf("Expected ErrRecallWindowExpired, got %v", err)
	}
	if len(f.repo.recalled) != 0 {
		t.Error("Expired recall must not touch the message")
	}
}

func TestRecallOnlyBySender(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ev, err := f.uc.SendText(ctx, scopeFor("alice"), message.SendTextInput{ReceiverID: "bob", Content: "hi"})
	if err != nil {
		t.Fatalf("SendText failed: %v", err)
	}

	if err := f.uc.Recall(ctx, scopeFor("bob"), ev.ID); err != message.ErrNotSender {
		t.Errorf("Receiver recall: expected ErrNotSender, got %v", err)
	}
	if err := f.uc.Recall(ctx, scopeFor("carol"), ev.ID); err != message.ErrNotSender {
		t.Errorf("Outsider recall: expected ErrNotSender, got %v", err)
	}
	if err := f.uc.Recall(ctx, scopeFor("alice"), "missing"); err != message.ErrMessageNotFound {
		t.Errorf("Missing message: expected ErrMessageNotFound, got %v", err)
	}
}

func TestDeleteIsPerParticipantAndSilent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ev, err := f.uc.SendText(ctx, scopeFor("alice"), message.SendTextInput{ReceiverID: "bob", Content: "hi"})
	if err != nil {
		t.Fatalf("SendText failed: %v", err)
	}
	broadcastsBefore := len(f.delivery.chatPayloads)

	if err := f.uc.Delete(ctx, scopeFor("alice"), ev.ID); err != nil {
		t.Fatalf("Sender delete failed: %v", err)
	}
	if err := f.uc.Delete(ctx, scopeFor("bob"), ev.ID); err != nil {
		t.Fatalf("Receiver delete failed: %v", err)
	}
	if err := f.uc.Delete(ctx, scopeFor("carol"), ev.ID); err != message.ErrNotParticipant {
		t.Errorf("Outsider delete: expected ErrNotParticipant, got %v", err)
	}

	if len(f.repo.deletedFor) != 2 {
		t.Fatalf("Expected 2 delete flags, got %d", len(f.repo.deletedFor))
	}
	if !f.repo.deletedFor[0].bySender || f.repo.deletedFor[1].bySender {
		t.Errorf("Delete flags mapped to the wrong sides: %+v", f.repo.deletedFor)
	}
	if len(f.delivery.chatPayloads) != broadcastsBefore {
		t.Error("Delete must not broadcast to the conversation")
	}
}

func TestSendMediaValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.SendMedia(ctx, scopeFor("alice"), message.SendMediaInput{
		ReceiverID: "bob", Type: model.MessageTypeText, MediaURL: "http://x/a.png",
	})
	if err != message.ErrUnsupportedMediaType {
		t.Errorf("Text type: expected ErrUnsupportedMediaType, got %v", err)
	}

	_, err = f.uc.SendMedia(ctx, scopeFor("alice"), message.SendMediaInput{
		ReceiverID: "bob", Type: model.MessageTypeImage,
	})
	if err != message.ErrFieldRequired {
		t.Errorf("Missing URL: expected ErrFieldRequired, got %v", err)
	}
}

func TestSendMediaTrustGate(t *testing.T) {
	tests := []struct {
		name     string
		isFriend bool
		hasReply bool
		wantErr  error
	}{
		{"friends", true, false, nil},
		{"receiver replied before", false, true, nil},
		{"no trust", false, false, message.ErrMediaNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.friends.isFriend = tt.isFriend
			f.repo.hasReply = tt.hasReply

			_, err := f.uc.SendMedia(context.Background(), scopeFor("alice"), message.SendMediaInput{
				ReceiverID: "bob",
				Type:       model.MessageTypeImage,
				MediaURL:   "http://storage/img.png",
			})
			if err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSendMediaWithoutTrustRequirement(t *testing.T) {
	f := newFixture()
	f.uc.cfg.MediaRequiresTrust = false

	_, err := f.uc.SendMedia(context.Background(), scopeFor("alice"), message.SendMediaInput{
		ReceiverID: "bob",
		Type:       model.MessageTypeVideo,
		MediaURL:   "http://storage/clip.mp4",
	})
	if err != nil {
		t.Errorf("Media should not be gated when trust is disabled: %v", err)
	}
}

func TestSubscribeConversationSendsHistoryFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.uc.SendText(ctx, scopeFor("alice"), message.SendTextInput{ReceiverID: "bob", Content: "first"}); err != nil {
		t.Fatalf("SendText failed: %v", err)
	}

	ch, err := f.uc.SubscribeConversation(ctx, scopeFor("bob"), "alice")
	if err != nil {
		t.Fatalf("SubscribeConversation failed: %v", err)
	}
	defer f.uc.Unregister(ch)

	frame := <-ch.Receive()
	var ev model.ChatEvent
	if err := json.Unmarshal(frame.Data, &ev); err != nil {
		t.Fatalf("Snapshot frame is not a chat event: %v", err)
	}
	if ev.Kind != model.ChatEventHistory {
		t.Errorf("Expected HISTORY snapshot first, got %s", ev.Kind)
	}
	if len(ev.Messages) != 1 {
		t.Errorf("Expected 1 message in snapshot, got %d", len(ev.Messages))
	}
}

func TestMarkConversationReadBroadcasts(t *testing.T) {
	f := newFixture()

	if err := f.uc.MarkConversationRead(context.Background(), scopeFor("bob"), "alice"); err != nil {
		t.Fatalf("MarkConversationRead failed: %v", err)
	}

	chat := f.lastChatEvent(t)
	if chat.Kind != model.ChatEventRead || chat.UserID != "bob" {
		t.Errorf("Expected READ broadcast from bob, got %+v", chat)
	}
}

func TestConversationSummariesPaginates(t *testing.T) {
	f := newFixture()
	for _, partner := range []string{"bob", "carol", "dave"} {
		f.repo.summaries = append(f.repo.summaries, model.ConversationSummary{PartnerID: partner})
	}

	out, err := f.uc.ConversationSummaries(context.Background(), scopeFor("alice"), message.SummariesInput{
		PaginateQuery: paginator.PaginateQuery{Page: 2, Limit: 2},
	})
	if err != nil {
		t.Fatalf("ConversationSummaries failed: %v", err)
	}

	if len(out.Summaries) != 1 || out.Summaries[0].PartnerID != "dave" {
		t.Errorf("Expected second page with dave only, got %+v", out.Summaries)
	}
	if out.Paginator.Total != 3 || out.Paginator.CurrentPage != 2 {
		t.Errorf("Unexpected pagination metadata: %+v", out.Paginator)
	}

	empty, err := f.uc.ConversationSummaries(context.Background(), scopeFor("alice"), message.SummariesInput{
		PaginateQuery: paginator.PaginateQuery{Page: 5, Limit: 2},
	})
	if err != nil {
		t.Fatalf("ConversationSummaries failed: %v", err)
	}
	if len(empty.Summaries) != 0 || empty.Paginator.Total != 3 {
		t.Errorf("Out-of-range page should be empty with the total kept, got %+v", empty)
	}
}
