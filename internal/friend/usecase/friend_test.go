package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"blognest-api/internal/friend"
	"blognest-api/internal/friend/repository"
	"blognest-api/internal/model"
	"blognest-api/internal/notification"
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

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

type fakeRepo struct {
	requests    map[string]model.FriendRequest
	friendships map[string]bool
	follows     map[string]bool
	nextID      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		requests:    make(map[string]model.FriendRequest),
		friendships: make(map[string]bool),
		follows:     make(map[string]bool),
		nextID:      1,
	}
}

func (r *fakeRepo) CreateRequest(_ context.Context, req model.FriendRequest) (model.FriendRequest, error) {
	req.ID = fmt.Sprintf("req-%d", r.nextID)
	r.nextID++
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeRepo) RequestDetail(_ context.Context, id string) (model.FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return model.FriendRequest{}, repository.ErrNotFound
	}
	return req, nil
}

func (r *fakeRepo) PendingBetween(_ context.Context, userA, userB string) (model.FriendRequest, error) {
	for _, req := range r.requests {
		if req.Status != model.FriendRequestPending {
			continue
		}
		if pairKey(req.SenderID, req.ReceiverID) == pairKey(userA, userB) {
			return req, nil
		}
	}
	return model.FriendRequest{}, repository.ErrNotFound
}

func (r *fakeRepo) PendingFor(_ context.Context, receiverID string) ([]model.FriendRequest, error) {
	var out []model.FriendRequest
	for _, req := range r.requests {
		if req.ReceiverID == receiverID && req.Status == model.FriendRequestPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountPending(_ context.Context, receiverID string) (int64, error) {
	reqs, _ := r.PendingFor(context.Background(), receiverID)
	return int64(len(reqs)), nil
}

func (r *fakeRepo) ResolveRequest(_ context.Context, id string, status model.FriendRequestStatus) error {
	req, ok := r.requests[id]
	if !ok || req.Status != model.FriendRequestPending {
		return repository.ErrNotFound
	}
	req.Status = status
	r.requests[id] = req
	return nil
}

func (r *fakeRepo) CreateFriendship(_ context.Context, userA, userB string) error {
	r.friendships[pairKey(userA, userB)] = true
	return nil
}

func (r *fakeRepo) DeleteFriendship(_ context.Context, userA, userB string) error {
	key := pairKey(userA, userB)
	if !r.friendships[key] {
		return repository.ErrNotFound
	}
	delete(r.friendships, key)
	return nil
}

func (r *fakeRepo) IsFriend(_ context.Context, userA, userB string) (bool, error) {
	return r.friendships[pairKey(userA, userB)], nil
}

func (r *fakeRepo) CreateFollow(_ context.Context, followerID, followeeID string) (bool, error) {
	key := followerID + ">" + followeeID
	if r.follows[key] {
		return false, nil
	}
	r.follows[key] = true
	return true, nil
}

func (r *fakeRepo) DeleteFollow(_ context.Context, followerID, followeeID string) (bool, error) {
	key := followerID + ">" + followeeID
	if !r.follows[key] {
		return false, nil
	}
	delete(r.follows, key)
	return true, nil
}

func (r *fakeRepo) IsFollowing(_ context.Context, followerID, followeeID string) (bool, error) {
	return r.follows[followerID+">"+followeeID], nil
}

func (r *fakeRepo) FollowCounts(_ context.Context, userID string) (int64, int64, error) {
	var followers, following int64
	for key := range r.follows {
		parts := strings.SplitN(key, ">", 2)
		if parts[1] == userID {
			followers++
		}
		if parts[0] == userID {
			following++
		}
	}
	return followers, following, nil
}

type fakeNotifier struct {
	sent []notification.SendInput
}

func (n *fakeNotifier) Send(_ context.Context, ip notification.SendInput) (model.NotificationEvent, error) {
	n.sent = append(n.sent, ip)
	return model.NotificationEvent{}, nil
}

func newTestUsecase() (*implUsecase, *fakeRepo, *fakeNotifier) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := New(&testLogger{}, repo, notifier, nil)
	return uc, repo, notifier
}

func scopeFor(userID string) model.Scope {
	return model.Scope{UserID: userID, Username: userID, Role: "USER"}
}

func TestSendRequestLifecycle(t *testing.T) {
	uc, _, notifier := newTestUsecase()
	ctx := context.Background()

	req, err := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{ReceiverID: "bob", Message: "hi"})
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	if req.Status != model.FriendRequestPending {
		t.Errorf("Expected pending request, got %s", req.Status)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Type != string(model.NotificationFriendRequest) {
		t.Errorf("Expected FRIEND_REQUEST notification, got %+v", notifier.sent)
	}
	if notifier.sent[0].ReferenceID != req.ID {
		t.Errorf("Notification should reference the request, got %q", notifier.sent[0].ReferenceID)
	}

	// A duplicate while the first is pending is rejected, in either direction.
	if _, err := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{ReceiverID: "bob"}); err != friend.ErrRequestPending {
		t.Errorf("Expected ErrRequestPending, got %v", err)
	}
	if _, err := uc.SendRequest(ctx, scopeFor("bob"), friend.SendRequestInput{ReceiverID: "alice"}); err != friend.ErrRequestPending {
		t.Errorf("Reverse direction: expected ErrRequestPending, got %v", err)
	}
}

func TestSendRequestValidation(t *testing.T) {
	uc, repo, _ := newTestUsecase()
	ctx := context.Background()

	if _, err := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{}); err != friend.ErrFieldRequired {
		t.Errorf("Expected ErrFieldRequired, got %v", err)
	}
	if _, err := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{ReceiverID: "alice"}); err != friend.ErrSelfAction {
		t.Errorf("Expected ErrSelfAction, got %v", err)
	}

	repo.friendships[pairKey("alice", "bob")] = true
	if _, err := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{ReceiverID: "bob"}); err != friend.ErrAlreadyFriends {
		t.Errorf("Expected ErrAlreadyFriends, got %v", err)
	}
}

func TestRespondAccept(t *testing.T) {
	uc, repo, notifier := newTestUsecase()
	ctx := context.Background()

	req, err := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{ReceiverID: "bob"})
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}

	if err := uc.Respond(ctx, scopeFor("bob"), friend.RespondInput{RequestID: req.ID, Accept: true}); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	isFriend, _ := repo.IsFriend(ctx, "alice", "bob")
	if !isFriend {
		t.Error("Accepting should create the friendship")
	}
	last := notifier.sent[len(notifier.sent)-1]
	if last.Type != string(model.NotificationFriendRequestAccepted) || last.ReceiverID != "alice" {
		t.Errorf("Expected ACCEPTED notification to alice, got %+v", last)
	}

	// Responding again hits the already-resolved guard.
	if err := uc.Respond(ctx, scopeFor("bob"), friend.RespondInput{RequestID: req.ID, Accept: true}); err != friend.ErrAlreadyResolved {
		t.Errorf("Expected ErrAlreadyResolved, got %v", err)
	}
}

func TestRespondReject(t *testing.T) {
	uc, repo, notifier := newTestUsecase()
	ctx := context.Background()

	req, _ := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{ReceiverID: "bob"})

	if err := uc.Respond(ctx, scopeFor("bob"), friend.RespondInput{RequestID: req.ID, Accept: false}); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	isFriend, _ := repo.IsFriend(ctx, "alice", "bob")
	if isFriend {
		t.Error("Rejecting must not create a friendship")
	}
	last := notifier.sent[len(notifier.sent)-1]
	if last.Type != string(model.NotificationFriendRequestRejected) {
		t.Errorf("Expected REJECTED notification, got %+v", last)
	}
}

func TestRespondGuards(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()

	req, _ := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{ReceiverID: "bob"})

	if err := uc.Respond(ctx, scopeFor("mallory"), friend.RespondInput{RequestID: req.ID, Accept: true}); err != friend.ErrNotReceiver {
		t.Errorf("Expected ErrNotReceiver, got %v", err)
	}
	if err := uc.Respond(ctx, scopeFor("bob"), friend.RespondInput{RequestID: "missing", Accept: true}); err != friend.ErrRequestNotFound {
		t.Errorf("Expected ErrRequestNotFound, got %v", err)
	}
}

func TestDeleteFriend(t *testing.T) {
	uc, repo, notifier := newTestUsecase()
	ctx := context.Background()

	repo.friendships[pairKey("alice", "bob")] = true

	if err := uc.DeleteFriend(ctx, scopeFor("alice"), "bob"); err != nil {
		t.Fatalf("DeleteFriend failed: %v", err)
	}
	if isFriend, _ := repo.IsFriend(ctx, "alice", "bob"); isFriend {
		t.Error("Friendship should be gone")
	}
	last := notifier.sent[len(notifier.sent)-1]
	if last.Type != string(model.NotificationFriendDelete) {
		t.Errorf("Expected FRIEND_DELETE notification, got %+v", last)
	}

	if err := uc.DeleteFriend(ctx, scopeFor("alice"), "bob"); err != friend.ErrNotFriends {
		t.Errorf("Expected ErrNotFriends, got %v", err)
	}
}

func TestCountPendingAfterLifecycle(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()

	req, _ := uc.SendRequest(ctx, scopeFor("alice"), friend.SendRequestInput{ReceiverID: "bob"})
	uc.SendRequest(ctx, scopeFor("carol"), friend.SendRequestInput{ReceiverID: "bob"})

	count, err := uc.CountPending(ctx, "bob")
	if err != nil {
		t.Fatalf("CountPending failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 pending requests, got %d", count)
	}

	uc.Respond(ctx, scopeFor("bob"), friend.RespondInput{RequestID: req.ID, Accept: true})

	count, _ = uc.CountPending(ctx, "bob")
	if count != 1 {
		t.Errorf("Expected 1 pending request after resolve, got %d", count)
	}
}

func TestFollowIsIdempotent(t *testing.T) {
	uc, _, notifier := newTestUsecase()
	ctx := context.Background()

	if err := uc.Follow(ctx, scopeFor("alice"), "bob"); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("Expected 1 FOLLOW notification, got %d", len(notifier.sent))
	}

	// The second follow succeeds silently without another notification.
	if err := uc.Follow(ctx, scopeFor("alice"), "bob"); err != nil {
		t.Fatalf("Repeated follow failed: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("Repeated follow must not notify again, got %d", len(notifier.sent))
	}
}

func TestUnfollowIsIdempotent(t *testing.T) {
	uc, _, notifier := newTestUsecase()
	ctx := context.Background()

	uc.Follow(ctx, scopeFor("alice"), "bob")
	sentAfterFollow := len(notifier.sent)

	if err := uc.Unfollow(ctx, scopeFor("alice"), "bob"); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	if len(notifier.sent) != sentAfterFollow+1 {
		t.Errorf("Expected UNFOLLOW notification")
	}

	if err := uc.Unfollow(ctx, scopeFor("alice"), "bob"); err != nil {
		t.Fatalf("Repeated unfollow failed: %v", err)
	}
	if len(notifier.sent) != sentAfterFollow+1 {
		t.Errorf("Repeated unfollow must not notify again")
	}
}

func TestFollowValidation(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()

	if err := uc.Follow(ctx, scopeFor("alice"), ""); err != friend.ErrFieldRequired {
		t.Errorf("Expected ErrFieldRequired, got %v", err)
	}
	if err := uc.Follow(ctx, scopeFor("alice"), "alice"); err != friend.ErrSelfAction {
		t.Errorf("Expected ErrSelfAction, got %v", err)
	}
}

func TestFollowCounts(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()

	uc.Follow(ctx, scopeFor("alice"), "bob")
	uc.Follow(ctx, scopeFor("carol"), "bob")
	uc.Follow(ctx, scopeFor("bob"), "alice")

	counts, err := uc.FollowCounts(ctx, "bob")
	if err != nil {
		t.Fatalf("FollowCounts failed: %v", err)
	}
	if counts.Followers != 2 || counts.Following != 1 {
		t.Errorf("Expected 2 followers / 1 following, got %+v", counts)
	}

	following, _ := uc.IsFollowing(ctx, "alice", "bob")
	if !following {
		t.Error("alice should be following bob")
	}
}
