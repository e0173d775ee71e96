package redis

import (
	"context"
	"testing"
	"time"

	"blognest-api/internal/model"
	"blognest-api/internal/realtime"

	goredis "github.com/redis/go-redis/v9"
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

// unreachableRedis satisfies pkgRedis.IRedis with a client that cannot
// connect, so every publish fails immediately.
type unreachableRedis struct{}

func (unreachableRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (unreachableRedis) Get(ctx context.Context, key string) (string, error)  { return "", nil }
func (unreachableRedis) Delete(ctx context.Context, keys ...string) error     { return nil }
func (unreachableRedis) Exists(ctx context.Context, key string) (bool, error) { return false, nil }
func (unreachableRedis) TTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}
func (unreachableRedis) Close() error                   { return nil }
func (unreachableRedis) Ping(ctx context.Context) error { return nil }
func (unreachableRedis) GetClient() *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func newTestSubscriber() (*subscriber, *realtime.Registry, *realtime.ConversationRegistry) {
	logger := &testLogger{}
	registry := realtime.NewRegistry(logger, 16, 0)
	conversations := realtime.NewConversationRegistry(logger, 16)
	s := New(unreachableRedis{}, registry, conversations, "blognest", logger).(*subscriber)
	return s, registry, conversations
}

func TestParseChannel(t *testing.T) {
	s, _, _ := newTestSubscriber()

	tests := []struct {
		channel    string
		wantTarget channelTarget
		wantID     string
		wantOK     bool
	}{
		{"blognest:notify:user:user123", targetUser, "user123", true},
		{"blognest:chat:alice:bob", targetConversation, "alice:bob", true},
		{"blognest:notify:user:", 0, "", false},
		{"blognest:chat:", 0, "", false},
		{"other:notify:user:user123", 0, "", false},
		{"blognest:unknown:user123", 0, "", false},
	}

	for _, tt := range tests {
		target, id, ok := s.parseChannel(tt.channel)
		if ok != tt.wantOK {
			t.Errorf("parseChannel(%q) ok = %v, want %v", tt.channel, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if target != tt.wantTarget || id != tt.wantID {
			t.Errorf("parseChannel(%q) = (%v, %q), want (%v, %q)",
				tt.channel, target, id, tt.wantTarget, tt.wantID)
		}
	}
}

func TestHandleMessageFansOutToUserChannels(t *testing.T) {
	s, registry, _ := newTestSubscriber()

	ch, err := registry.Subscribe("user123")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	s.handleMessage(context.Background(), &goredis.Message{
		Channel: "blognest:notify:user:user123",
		Payload: `{"type":"FOLLOW"}`,
	})

	select {
	case frame := <-ch.Receive():
		if frame.Event != realtime.EventMessage {
			t.Errorf("Expected %q event, got %q", realtime.EventMessage, frame.Event)
		}
		if string(frame.Data) != `{"type":"FOLLOW"}` {
			t.Errorf("Unexpected payload: %s", frame.Data)
		}
	default:
		t.Error("User channel did not receive the broker frame")
	}
}

func TestHandleMessageFansOutToConversation(t *testing.T) {
	s, _, conversations := newTestSubscriber()

	key := model.NewConversationKey("alice", "bob")
	ch, err := conversations.Subscribe(key, "alice")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	s.handleMessage(context.Background(), &goredis.Message{
		Channel: "blognest:chat:" + string(key),
		Payload: `{"kind":"MESSAGE"}`,
	})

	select {
	case <-ch.Receive():
	default:
		t.Error("Chat channel did not receive the broker frame")
	}
}

func TestHandleMessageIgnoresUnknownChannels(t *testing.T) {
	s, registry, _ := newTestSubscriber()

	ch, _ := registry.Subscribe("user123")
	s.handleMessage(context.Background(), &goredis.Message{
		Channel: "blognest:bogus:user123",
		Payload: `{}`,
	})

	select {
	case <-ch.Receive():
		t.Error("Unknown channel should not fan out")
	default:
	}
}

func TestBrokerDeliveryFallsBackToLocalOnPublishFailure(t *testing.T) {
	logger := &testLogger{}
	registry := realtime.NewRegistry(logger, 16, 0)
	conversations := realtime.NewConversationRegistry(logger, 16)
	local := realtime.NewLocalDelivery(registry, conversations)
	d := NewBrokerDelivery(unreachableRedis{}, local, "blognest", logger)

	ch, err := registry.Subscribe("bob")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := d.DeliverToUser(context.Background(), "bob", []byte(`{"type":"FOLLOW"}`)); err != nil {
		t.Fatalf("Fallback delivery failed: %v", err)
	}

	select {
	case <-ch.Receive():
	default:
		t.Error("Local fallback should have reached the user's channel")
	}
}

func TestBrokerDeliveryConversationFallback(t *testing.T) {
	logger := &testLogger{}
	registry := realtime.NewRegistry(logger, 16, 0)
	conversations := realtime.NewConversationRegistry(logger, 16)
	local := realtime.NewLocalDelivery(registry, conversations)
	d := NewBrokerDelivery(unreachableRedis{}, local, "blognest", logger)

	key := model.NewConversationKey("alice", "bob")
	ch, err := conversations.Subscribe(key, "bob")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := d.DeliverToConversation(context.Background(), key, []byte(`{"kind":"MESSAGE"}`)); err != nil {
		t.Fatalf("Fallback delivery failed: %v", err)
	}

	select {
	case <-ch.Receive():
	default:
		t.Error("Local fallback should have reached the conversation channel")
	}
}
