package realtime

import (
	"context"

	"blognest-api/internal/model"
)

// Delivery is the strategy that moves a serialized event towards its
// audience. The local variant fans out inside this process; the broker
// variant publishes to other instances and falls back to local fan-out
// when the broker is unavailable. The variant is chosen once at
// startup.
type Delivery interface {
	DeliverToUser(ctx context.Context, userID string, data []byte) error
	DeliverToConversation(ctx context.Context, key model.ConversationKey, data []byte) error
}

// LocalDelivery fans out directly to the in-process registries.
type LocalDelivery struct {
	registry      *Registry
	conversations *ConversationRegistry
}

// NewLocalDelivery creates a local-only delivery strategy.
func NewLocalDelivery(registry *Registry, conversations *ConversationRegistry) *LocalDelivery {
	return &LocalDelivery{
		registry:      registry,
		conversations: conversations,
	}
}

// DeliverToUser pushes to every open channel of the user. A user with
// no channels is a silent no-op; the durable log already holds the
// event for them.
func (d *LocalDelivery) DeliverToUser(_ context.Context, userID string, data []byte) error {
	d.registry.SendToUser(userID, Frame{Event: EventMessage, Data: data})
	return nil
}

// DeliverToConversation pushes to every channel subscribed to the key.
func (d *LocalDelivery) DeliverToConversation(_ context.Context, key model.ConversationKey, data []byte) error {
	d.conversations.SendToConversation(key, Frame{Event: EventMessage, Data: data})
	return nil
}
