package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"blognest-api/internal/model"
	"blognest-api/internal/notification"
	"blognest-api/internal/notification/repository"
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
	notifications map[string]model.Notification
	unreadByType  map[model.NotificationType]int64
	marked        []string
	markedAll     bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		notifications: make(map[string]model.Notification),
		unreadByType:  make(map[model.NotificationType]int64),
	}
}

func (r *fakeRepo) Append(_ context.Context, n model.Notification) (model.Notification, error) {
	n.ID = "n-1"
	r.notifications[n.ID] = n
	return n, nil
}

func (r *fakeRepo) Get(_ context.Context, _ repository.GetOptions) ([]model.Notification, paginator.Paginator, error) {
	var out []model.Notification
	for _, n := range r.notifications {
		out = append(out, n)
	}
	return out, paginator.Paginator{Total: int64(len(out))}, nil
}

func (r *fakeRepo) Detail(_ context.Context, id string) (model.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return model.Notification{}, repository.ErrNotFound
	}
	return n, nil
}

func (r *fakeRepo) CountUnread(_ context.Context, _ string) (int64, error) {
	var total int64
	for _, c := range r.unreadByType {
		total += c
	}
	return total, nil
}

func (r *fakeRepo) CountUnreadByTypes(_ context.Context, _ string, types []model.NotificationType) (int64, error) {
	var total int64
	for _, t := range types {
		total += r.unreadByType[t]
	}
	return total, nil
}

func (r *fakeRepo) MarkRead(_ context.Context, _, id string) error {
	if _, ok := r.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	r.marked = append(r.marked, id)
	return nil
}

func (r *fakeRepo) MarkAllRead(_ context.Context, _ string, _ []model.NotificationType) error {
	r.markedAll = true
	return nil
}

type fakePending struct {
	count int64
	err   error
}

func (p *fakePending) CountPending(_ context.Context, _ string) (int64, error) {
	return p.count, p.err
}

type fakeDirectory struct {
	users []model.User
}

func (d *fakeDirectory) ListByIDs(_ context.Context, _ []string) ([]model.User, error) {
	return d.users, nil
}

type noopDelivery struct{}

func (noopDelivery) DeliverToUser(_ context.Context, _ string, _ []byte) error { return nil }
func (noopDelivery) DeliverToConversation(_ context.Context, _ model.ConversationKey, _ []byte) error {
	return nil
}

func newTestUsecase(repo *fakeRepo, pending *fakePending, users notification.UserDirectory) *implUsecase {
	logger := &testLogger{}
	registry := realtime.NewRegistry(logger, 16, 0)
	publisher := realtime.NewPublisher(logger, repo, noopDelivery{}, registry)
	uc := New(logger, repo, publisher, registry, users)
	if pending != nil {
		uc.SetPendingCounter(pending)
	}
	return uc
}

func TestSubscribeSeedsConnectedFrame(t *testing.T) {
	uc := newTestUsecase(newFakeRepo(), &fakePending{count: 3}, nil)

	ch, err := uc.Subscribe(context.Background(), model.Scope{UserID: "bob"})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer uc.Unregister(ch)

	frame := <-ch.Receive()
	var payload notification.ConnectedPayload
	if err := json.Unmarshal(frame.Data, &payload); err != nil {
		t.Fatalf("Connected frame is not valid JSON: %v", err)
	}
	if payload.Type != model.NotificationSystem || payload.Message != "connected" {
		t.Errorf("Unexpected connected payload: %+v", payload)
	}
	if payload.PendingRequests != 3 {
		t.Errorf("Expected 3 pending requests, got %d", payload.PendingRequests)
	}
}

func TestSubscribeSurvivesPendingCountFailure(t *testing.T) {
	uc := newTestUsecase(newFakeRepo(), &fakePending{err: errors.New("db down")}, nil)

	ch, err := uc.Subscribe(context.Background(), model.Scope{UserID: "bob"})
	if err != nil {
		t.Fatalf("Stream should open despite the count failure: %v", err)
	}
	defer uc.Unregister(ch)

	frame := <-ch.Receive()
	var payload notification.ConnectedPayload
	if err := json.Unmarshal(frame.Data, &payload); err != nil {
		t.Fatalf("Connected frame is not valid JSON: %v", err)
	}
	if payload.PendingRequests != 0 {
		t.Errorf("Badge should start at zero on failure, got %d", payload.PendingRequests)
	}
}

func TestSendRequiresReceiver(t *testing.T) {
	uc := newTestUsecase(newFakeRepo(), nil, nil)

	_, err := uc.Send(context.Background(), notification.SendInput{Type: "FOLLOW", SenderID: "alice"})
	if err != notification.ErrFieldRequired {
		t.Errorf("Expected ErrFieldRequired, got %v", err)
	}
}

func TestSendPersistsAndEnriches(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeDirectory{users: []model.User{{ID: "alice", Nickname: "Alice A"}}}
	uc := newTestUsecase(repo, nil, users)

	ev, err := uc.Send(context.Background(), notification.SendInput{
		Type:       "FOLLOW",
		SenderID:   "alice",
		ReceiverID: "bob",
		Message:    "alice followed you",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if ev.ID != "n-1" {
		t.Errorf("Event should carry the durable ID, got %q", ev.ID)
	}
	if ev.SenderNickname != "Alice A" {
		t.Errorf("Expected enriched sender nickname, got %q", ev.SenderNickname)
	}
	if ev.Message != "alice followed you" {
		t.Errorf("Caller-supplied message must not be replaced, got %q", ev.Message)
	}
	if len(repo.notifications) != 1 {
		t.Errorf("Expected 1 persisted notification, got %d", len(repo.notifications))
	}
}

func TestSendComposesMessageFromSenderNickname(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeDirectory{users: []model.User{{ID: "alice", Nickname: "Alice A"}}}
	logger := &testLogger{}
	registry := realtime.NewRegistry(logger, 16, 0)
	publisher := realtime.NewPublisher(logger, repo, realtime.NewLocalDelivery(registry, nil), registry)
	uc := New(logger, repo, publisher, registry, users)

	ch, err := registry.Subscribe("bob")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer registry.Unregister(ch)

	ev, err := uc.Send(context.Background(), notification.SendInput{
		Type:       "FOLLOW",
		SenderID:   "alice",
		ReceiverID: "bob",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	want := "Alice A started following you"
	if ev.Message != want {
		t.Errorf("Expected composed message %q, got %q", want, ev.Message)
	}
	if stored := repo.notifications["n-1"]; stored.Message != want {
		t.Errorf("Durable row should store the composed message, got %q", stored.Message)
	}

	frame := <-ch.Receive()
	var pushed model.NotificationEvent
	if err := json.Unmarshal(frame.Data, &pushed); err != nil {
		t.Fatalf("Pushed frame is not valid JSON: %v", err)
	}
	if pushed.Message != want {
		t.Errorf("Pushed frame should carry the composed message, got %q", pushed.Message)
	}
}

func TestSendFallsBackToSenderIDWithoutDirectory(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUsecase(repo, nil, nil)

	ev, err := uc.Send(context.Background(), notification.SendInput{
		Type:       "FRIEND_REQUEST_ACCEPTED",
		SenderID:   "alice",
		ReceiverID: "bob",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if ev.Message != "alice accepted your friend request" {
		t.Errorf("Expected sender ID fallback in message, got %q", ev.Message)
	}
}

func TestUnreadStatsCategories(t *testing.T) {
	repo := newFakeRepo()
	repo.unreadByType[model.NotificationPostLike] = 2
	repo.unreadByType[model.NotificationCommentLike] = 1
	repo.unreadByType[model.NotificationPostComment] = 4
	repo.unreadByType[model.NotificationFollow] = 5
	uc := newTestUsecase(repo, &fakePending{count: 7}, nil)

	stats, err := uc.UnreadStats(context.Background(), model.Scope{UserID: "bob"})
	if err != nil {
		t.Fatalf("UnreadStats failed: %v", err)
	}

	want := map[string]int64{
		model.UnreadStatLikes:    3,
		model.UnreadStatComments: 4,
		model.UnreadStatFollow:   5,
		model.UnreadStatRequests: 7,
		model.UnreadStatAll:      19,
	}
	for k, v := range want {
		if stats[k] != v {
			t.Errorf("stats[%s] = %d, want %d", k, stats[k], v)
		}
	}
}

func TestMarkReadChecksOwnership(t *testing.T) {
	repo := newFakeRepo()
	repo.notifications["n-1"] = model.Notification{ID: "n-1", ReceiverID: "bob"}
	uc := newTestUsecase(repo, nil, nil)
	ctx := context.Background()

	if err := uc.MarkRead(ctx, model.Scope{UserID: "mallory"}, "n-1"); err != notification.ErrNotOwner {
		t.Errorf("Expected ErrNotOwner, got %v", err)
	}
	if err := uc.MarkRead(ctx, model.Scope{UserID: "bob"}, "missing"); err != notification.ErrNotificationNotFound {
		t.Errorf("Expected ErrNotificationNotFound, got %v", err)
	}
	if err := uc.MarkRead(ctx, model.Scope{UserID: "bob"}, "n-1"); err != nil {
		t.Errorf("Owner mark read failed: %v", err)
	}
	if len(repo.marked) != 1 || repo.marked[0] != "n-1" {
		t.Errorf("Expected n-1 marked read, got %v", repo.marked)
	}
}

func TestMarkAllRead(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUsecase(repo, nil, nil)

	if err := uc.MarkAllRead(context.Background(), model.Scope{UserID: "bob"}, notification.MarkAllReadInput{}); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if !repo.markedAll {
		t.Error("Repository should have been asked to mark all read")
	}
}

func TestGetEnrichesEvents(t *testing.T) {
	repo := newFakeRepo()
	repo.notifications["n-1"] = model.Notification{
		ID:         "n-1",
		Type:       model.NotificationFollow,
		SenderID:   "alice",
		ReceiverID: "bob",
	}
	users := &fakeDirectory{users: []model.User{{ID: "alice", Nickname: "Alice A"}}}
	uc := newTestUsecase(repo, nil, users)

	out, err := uc.Get(context.Background(), model.Scope{UserID: "bob"}, notification.GetInput{})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(out.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(out.Events))
	}
	if out.Events[0].SenderNickname != "Alice A" {
		t.Errorf("Expected enriched nickname, got %q", out.Events[0].SenderNickname)
	}
}
