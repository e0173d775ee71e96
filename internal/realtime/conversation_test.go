package realtime

import (
	"testing"

	"blognest-api/internal/model"
)

func TestConversationSubscribeRequiresParticipant(t *testing.T) {
	r := NewConversationRegistry(&testLogger{}, 16)
	key := model.NewConversationKey("alice", "bob")

	if _, err := r.Subscribe(key, "mallory"); err != ErrNotParticipant {
		t.Errorf("Expected ErrNotParticipant, got %v", err)
	}
	if _, err := r.Subscribe(key, "alice"); err != nil {
		t.Errorf("Participant subscribe failed: %v", err)
	}
}

func TestConversationFanOutReachesBothParticipants(t *testing.T) {
	r := NewConversationRegistry(&testLogger{}, 16)
	key := model.NewConversationKey("alice", "bob")

	aliceCh, err := r.Subscribe(key, "alice")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	bobCh, err := r.Subscribe(key, "bob")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	sent := r.SendToConversation(key, Frame{Event: EventMessage, Data: []byte(`{"kind":"MESSAGE"}`)})
	if sent != 2 {
		t.Errorf("Expected 2 deliveries, got %d", sent)
	}
	for name, ch := range map[string]*Channel{"alice": aliceCh, "bob": bobCh} {
		select {
		case <-ch.Receive():
		default:
			t.Errorf("%s did not receive the frame", name)
		}
	}
}

func TestConversationIsolation(t *testing.T) {
	r := NewConversationRegistry(&testLogger{}, 16)
	keyAB := model.NewConversationKey("alice", "bob")
	keyAC := model.NewConversationKey("alice", "carol")

	abCh, _ := r.Subscribe(keyAB, "alice")
	acCh, _ := r.Subscribe(keyAC, "alice")

	r.SendToConversation(keyAB, Frame{Event: EventMessage})

	select {
	case <-abCh.Receive():
	default:
		t.Error("Subscriber of the target conversation missed the frame")
	}
	select {
	case <-acCh.Receive():
		t.Error("Frame leaked into a parallel conversation")
	default:
	}
}

func TestConversationHistorySnapshotPrecedesLiveMessages(t *testing.T) {
	r := NewConversationRegistry(&testLogger{}, 16)
	key := model.NewConversationKey("alice", "bob")

	history := Frame{Event: EventMessage, Data: []byte(`{"kind":"HISTORY"}`)}
	ch, err := r.Subscribe(key, "alice", history)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	r.SendToConversation(key, Frame{Event: EventMessage, Data: []byte(`{"kind":"MESSAGE"}`)})

	first := <-ch.Receive()
	if string(first.Data) != `{"kind":"HISTORY"}` {
		t.Errorf("Expected history snapshot first, got %s", first.Data)
	}
}

func TestConversationUnregisterIsIdempotent(t *testing.T) {
	r := NewConversationRegistry(&testLogger{}, 16)
	key := model.NewConversationKey("alice", "bob")

	ch, _ := r.Subscribe(key, "alice")
	r.Unregister(ch)
	r.Unregister(ch)

	if got := r.SendToConversation(key, Frame{Event: EventMessage}); got != 0 {
		t.Errorf("Expected 0 deliveries after unregister, got %d", got)
	}
}

func TestConversationKeyCanonicalOrder(t *testing.T) {
	k1 := model.NewConversationKey("alice", "bob")
	k2 := model.NewConversationKey("bob", "alice")

	if k1 != k2 {
		t.Errorf("Key should not depend on argument order: %q vs %q", k1, k2)
	}
	if !k1.Has("alice") || !k1.Has("bob") {
		t.Error("Both participants should be in the key")
	}
	if k1.Has("carol") {
		t.Error("Outsider should not be in the key")
	}

	a, b := k1.Participants()
	if a != "alice" || b != "bob" {
		t.Errorf("Expected (alice, bob), got (%s, %s)", a, b)
	}
}
