package realtime

import (
	"context"
	"encoding/json"
	"time"

	"blognest-api/internal/model"
	"blognest-api/pkg/log"
)

// DurableStore is the narrow persistence surface the publisher needs.
// The notification repository implements it.
type DurableStore interface {
	Append(ctx context.Context, notification model.Notification) (model.Notification, error)
}

// Publisher is the single entry point for emitting real-time events.
// Durable types are persisted first, then pushed; a persistence
// failure never blocks the live push.
type Publisher struct {
	store    DurableStore
	delivery Delivery
	registry *Registry

	l log.Logger
}

// NewPublisher creates an event publisher with the given delivery strategy.
func NewPublisher(l log.Logger, store DurableStore, delivery Delivery, registry *Registry) *Publisher {
	return &Publisher{
		store:    store,
		delivery: delivery,
		registry: registry,
		l:        l,
	}
}

// PublishNotification persists the event (unless its type is
// transient) and pushes it to the receiver's open channels. The
// returned event carries the durable ID when one was written.
func (p *Publisher) PublishNotification(ctx context.Context, ev model.NotificationEvent) (model.NotificationEvent, error) {
	ev.Type = model.NormalizeNotificationType(string(ev.Type))
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	if !ev.Type.IsTransient() && p.store != nil {
		stored, err := p.store.Append(ctx, model.Notification{
			Type:             ev.Type,
			SenderID:         ev.SenderID,
			ReceiverID:       ev.ReceiverID,
			Message:          ev.Message,
			ReferenceID:      optional(ev.ReferenceID),
			ReferenceExtraID: optional(ev.ReferenceExtraID),
			CreatedAt:        ev.CreatedAt,
		})
		if err != nil {
			// The receiver loses durability for this event but an
			// online client still gets the push.
			p.l.Errorf(ctx, "internal.realtime.publisher.PublishNotification: %v", err)
		} else {
			ev.ID = stored.ID
			ev.CreatedAt = stored.CreatedAt
		}
	}

	data, err := json.Marshal(ev)
	if err != nil {
		p.l.Errorf(ctx, "internal.realtime.publisher.PublishNotification: %v", err)
		return ev, err
	}
	if err := p.delivery.DeliverToUser(ctx, ev.ReceiverID, data); err != nil {
		p.l.Warnf(ctx, "internal.realtime.publisher.PublishNotification: deliver: %v", err)
	}
	return ev, nil
}

// PublishConversation pushes a payload to every open channel of the
// conversation. Chat payloads are never written to the notification
// log here; the message store owns their durability.
func (p *Publisher) PublishConversation(ctx context.Context, key model.ConversationKey, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.l.Errorf(ctx, "internal.realtime.publisher.PublishConversation: %v", err)
		return err
	}
	if err := p.delivery.DeliverToConversation(ctx, key, data); err != nil {
		p.l.Warnf(ctx, "internal.realtime.publisher.PublishConversation: deliver: %v", err)
	}
	return nil
}

// IsOnline reports whether the user has an open notification channel
// on this instance.
func (p *Publisher) IsOnline(userID string) bool {
	return p.registry.IsOnline(userID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
