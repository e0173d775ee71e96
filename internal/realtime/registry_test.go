package realtime

import (
	"context"
	"testing"
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

func TestRegistrySendToUserReachesEveryChannel(t *testing.T) {
	r := NewRegistry(&testLogger{}, 16, 0)

	ch1, err := r.Subscribe("user1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	ch2, err := r.Subscribe("user1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	other, err := r.Subscribe("user2")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	sent := r.SendToUser("user1", Frame{Event: EventMessage, Data: []byte(`{"type":"SYSTEM"}`)})
	if sent != 2 {
		t.Errorf("Expected 2 deliveries, got %d", sent)
	}

	for i, ch := range []*Channel{ch1, ch2} {
		select {
		case frame := <-ch.Receive():
			if frame.Event != EventMessage {
				t.Errorf("Channel %d: expected event %q, got %q", i, EventMessage, frame.Event)
			}
		default:
			t.Errorf("Channel %d did not receive the frame", i)
		}
	}

	select {
	case <-other.Receive():
		t.Error("user2 channel should not receive user1's frame")
	default:
	}
}

func TestRegistrySendToOfflineUser(t *testing.T) {
	r := NewRegistry(&testLogger{}, 16, 0)

	if sent := r.SendToUser("ghost", Frame{Event: EventMessage}); sent != 0 {
		t.Errorf("Expected 0 deliveries for offline user, got %d", sent)
	}
}

func TestRegistryInitialFramesPrecedeLivePushes(t *testing.T) {
	r := NewRegistry(&testLogger{}, 16, 0)

	initial := Frame{Event: EventMessage, Data: []byte(`{"message":"connected"}`)}
	ch, err := r.Subscribe("user1", initial)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	r.SendToUser("user1", Frame{Event: EventMessage, Data: []byte(`{"message":"live"}`)})

	first := <-ch.Receive()
	if string(first.Data) != `{"message":"connected"}` {
		t.Errorf("Expected initial frame first, got %s", first.Data)
	}
	second := <-ch.Receive()
	if string(second.Data) != `{"message":"live"}` {
		t.Errorf("Expected live frame second, got %s", second.Data)
	}
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry(&testLogger{}, 16, 0)

	ch, err := r.Subscribe("user1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	r.Unregister(ch)
	r.Unregister(ch)
	r.Unregister(nil)

	if r.IsOnline("user1") {
		t.Error("User should be offline after unregister")
	}
	if got := r.Stats().TotalChannelsClosed; got != 1 {
		t.Errorf("Expected 1 closed channel, got %d", got)
	}
}

func TestRegistryMaxChannelsPerUser(t *testing.T) {
	r := NewRegistry(&testLogger{}, 16, 2)

	if _, err := r.Subscribe("user1"); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if _, err := r.Subscribe("user1"); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if _, err := r.Subscribe("user1"); err != ErrTooManyChannels {
		t.Errorf("Expected ErrTooManyChannels, got %v", err)
	}

	// Other users are unaffected by the cap.
	if _, err := r.Subscribe("user2"); err != nil {
		t.Errorf("Subscribe for another user failed: %v", err)
	}
}

func TestRegistryDropsClosedChannelOnSend(t *testing.T) {
	r := NewRegistry(&testLogger{}, 16, 0)

	ch1, _ := r.Subscribe("user1")
	ch2, _ := r.Subscribe("user1")
	ch1.Close()

	sent := r.SendToUser("user1", Frame{Event: EventMessage})
	if sent != 1 {
		t.Errorf("Expected 1 delivery, got %d", sent)
	}
	if got := len(r.ChannelsFor("user1")); got != 1 {
		t.Errorf("Expected closed channel to be dropped, have %d channels", got)
	}
	if ch2.State() != StateOpen {
		t.Error("Healthy channel should survive the drop")
	}
}

func TestRegistryDropsSlowChannelOnSend(t *testing.T) {
	r := NewRegistry(&testLogger{}, 1, 0)

	slow, _ := r.Subscribe("user1")
	fast, _ := r.Subscribe("user1")
	// Fill the slow channel's buffer without draining it.
	slow.Push(Frame{Event: EventMessage})

	sent := r.SendToUser("user1", Frame{Event: EventMessage})
	if sent != 1 {
		t.Errorf("Expected 1 delivery, got %d", sent)
	}
	if slow.State() != StateClosed {
		t.Error("Slow channel should have been closed")
	}
	if fast.State() != StateOpen {
		t.Error("Fast channel should stay open")
	}
	if got := r.Stats().TotalFramesDropped; got != 1 {
		t.Errorf("Expected 1 dropped frame, got %d", got)
	}
}

func TestRegistryCloseAll(t *testing.T) {
	r := NewRegistry(&testLogger{}, 16, 0)

	ch1, _ := r.Subscribe("user1")
	ch2, _ := r.Subscribe("user2")

	r.CloseAll()

	if ch1.State() != StateClosed || ch2.State() != StateClosed {
		t.Error("All channels should be closed")
	}
	if r.IsOnline("user1") || r.IsOnline("user2") {
		t.Error("No user should be online after CloseAll")
	}
}

func TestChannelPushAfterClose(t *testing.T) {
	ch := newChannel("user1", "", 4)
	ch.Close()
	ch.Close()

	if got := ch.Push(Frame{Event: EventMessage}); got != PushClosed {
		t.Errorf("Expected PushClosed, got %v", got)
	}
}

func TestChannelPushBufferFull(t *testing.T) {
	ch := newChannel("user1", "", 1)

	if got := ch.Push(Frame{Event: EventMessage}); got != PushDelivered {
		t.Errorf("Expected PushDelivered, got %v", got)
	}
	if got := ch.Push(Frame{Event: EventMessage}); got != PushBufferFull {
		t.Errorf("Expected PushBufferFull, got %v", got)
	}
}
