package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"blognest-api/internal/model"
)

type fakeStore struct {
	appended []model.Notification
	err      error
}

func (s *fakeStore) Append(_ context.Context, n model.Notification) (model.Notification, error) {
	if s.err != nil {
		return model.Notification{}, s.err
	}
	n.ID = "stored-id"
	s.appended = append(s.appended, n)
	return n, nil
}

type captureDelivery struct {
	userIDs  []string
	keys     []model.ConversationKey
	payloads [][]byte
}

func (d *captureDelivery) DeliverToUser(_ context.Context, userID string, data []byte) error {
	d.userIDs = append(d.userIDs, userID)
	d.payloads = append(d.payloads, data)
	return nil
}

func (d *captureDelivery) DeliverToConversation(_ context.Context, key model.ConversationKey, data []byte) error {
	d.keys = append(d.keys, key)
	d.payloads = append(d.payloads, data)
	return nil
}

func TestPublisherPersistsThenPushes(t *testing.T) {
	store := &fakeStore{}
	delivery := &captureDelivery{}
	p := NewPublisher(&testLogger{}, store, delivery, NewRegistry(&testLogger{}, 16, 0))

	ev, err := p.PublishNotification(context.Background(), model.NotificationEvent{
		Type:       model.NotificationFollow,
		SenderID:   "alice",
		ReceiverID: "bob",
		Message:    "alice followed you",
	})
	if err != nil {
		t.Fatalf("PublishNotification failed: %v", err)
	}

	if len(store.appended) != 1 {
		t.Fatalf("Expected 1 persisted notification, got %d", len(store.appended))
	}
	if ev.ID != "stored-id" {
		t.Errorf("Event should carry the durable ID, got %q", ev.ID)
	}
	if len(delivery.userIDs) != 1 || delivery.userIDs[0] != "bob" {
		t.Errorf("Expected delivery to bob, got %v", delivery.userIDs)
	}
}

func TestPublisherDeliversDespitePersistenceFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	delivery := &captureDelivery{}
	p := NewPublisher(&testLogger{}, store, delivery, NewRegistry(&testLogger{}, 16, 0))

	ev, err := p.PublishNotification(context.Background(), model.NotificationEvent{
		Type:       model.NotificationPostLike,
		SenderID:   "alice",
		ReceiverID: "bob",
	})
	if err != nil {
		t.Fatalf("Persistence failure should not fail the publish: %v", err)
	}
	if ev.ID != "" {
		t.Errorf("Event should have no durable ID, got %q", ev.ID)
	}
	if len(delivery.userIDs) != 1 {
		t.Errorf("Live push should still happen, got %d deliveries", len(delivery.userIDs))
	}
}

func TestPublisherNeverPersistsPrivateMessages(t *testing.T) {
	store := &fakeStore{}
	delivery := &captureDelivery{}
	p := NewPublisher(&testLogger{}, store, delivery, NewRegistry(&testLogger{}, 16, 0))

	_, err := p.PublishNotification(context.Background(), model.NotificationEvent{
		Type:       model.NotificationPrivateMessage,
		SenderID:   "alice",
		ReceiverID: "bob",
		Message:    "hey",
	})
	if err != nil {
		t.Fatalf("PublishNotification failed: %v", err)
	}

	if len(store.appended) != 0 {
		t.Errorf("Private messages must not reach the notification log, got %d rows", len(store.appended))
	}
	if len(delivery.userIDs) != 1 {
		t.Errorf("Private message should still be pushed, got %d deliveries", len(delivery.userIDs))
	}
}

func TestPublisherNormalizesUnknownTypes(t *testing.T) {
	store := &fakeStore{}
	delivery := &captureDelivery{}
	p := NewPublisher(&testLogger{}, store, delivery, NewRegistry(&testLogger{}, 16, 0))

	ev, err := p.PublishNotification(context.Background(), model.NotificationEvent{
		Type:       "SOMETHING_NEW",
		SenderID:   "alice",
		ReceiverID: "bob",
	})
	if err != nil {
		t.Fatalf("PublishNotification failed: %v", err)
	}
	if ev.Type != model.NotificationSystem {
		t.Errorf("Unknown type should normalize to SYSTEM, got %s", ev.Type)
	}
	if store.appended[0].Type != model.NotificationSystem {
		t.Errorf("Persisted row should carry the normalized type, got %s", store.appended[0].Type)
	}
}

func TestPublisherPayloadIsCamelCase(t *testing.T) {
	delivery := &captureDelivery{}
	p := NewPublisher(&testLogger{}, &fakeStore{}, delivery, NewRegistry(&testLogger{}, 16, 0))

	_, err := p.PublishNotification(context.Background(), model.NotificationEvent{
		Type:       model.NotificationFollow,
		SenderID:   "alice",
		ReceiverID: "bob",
	})
	if err != nil {
		t.Fatalf("PublishNotification failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(delivery.payloads[0], &decoded); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	for _, field := range []string{"senderId", "receiverId", "createdAt"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("Payload missing camelCase field %q: %s", field, delivery.payloads[0])
		}
	}
}

func TestPublisherConversationPayloadBypassesStore(t *testing.T) {
	store := &fakeStore{}
	delivery := &captureDelivery{}
	p := NewPublisher(&testLogger{}, store, delivery, NewRegistry(&testLogger{}, 16, 0))

	key := model.NewConversationKey("alice", "bob")
	err := p.PublishConversation(context.Background(), key, model.ChatEvent{
		Kind: model.ChatEventMessage,
	})
	if err != nil {
		t.Fatalf("PublishConversation failed: %v", err)
	}

	if len(store.appended) != 0 {
		t.Error("Conversation payloads must never be persisted to the notification log")
	}
	if len(delivery.keys) != 1 || delivery.keys[0] != key {
		t.Errorf("Expected delivery to %s, got %v", key, delivery.keys)
	}
}

func TestLocalDeliveryFansOutToRegistries(t *testing.T) {
	registry := NewRegistry(&testLogger{}, 16, 0)
	conversations := NewConversationRegistry(&testLogger{}, 16)
	d := NewLocalDelivery(registry, conversations)

	userCh, _ := registry.Subscribe("bob")
	key := model.NewConversationKey("alice", "bob")
	chatCh, _ := conversations.Subscribe(key, "alice")

	if err := d.DeliverToUser(context.Background(), "bob", []byte(`{}`)); err != nil {
		t.Fatalf("DeliverToUser failed: %v", err)
	}
	if err := d.DeliverToConversation(context.Background(), key, []byte(`{}`)); err != nil {
		t.Fatalf("DeliverToConversation failed: %v", err)
	}

	select {
	case frame := <-userCh.Receive():
		if frame.Event != EventMessage {
			t.Errorf("Expected %q event, got %q", EventMessage, frame.Event)
		}
	default:
		t.Error("User channel did not receive the frame")
	}
	select {
	case <-chatCh.Receive():
	default:
		t.Error("Chat channel did not receive the frame")
	}
}
