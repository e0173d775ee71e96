package redis

import (
	"context"

	"blognest-api/internal/model"
	"blognest-api/internal/realtime"
	"blognest-api/pkg/log"
	pkgRedis "blognest-api/pkg/redis"
)

// BrokerDelivery publishes events to Redis so every subscribed
// instance, this one included, fans them out to its local channels.
// When the publish fails the event still reaches clients connected to
// this instance through the local fallback.
type BrokerDelivery struct {
	redis  pkgRedis.IRedis
	local  realtime.Delivery
	prefix string
	logger log.Logger
}

// NewBrokerDelivery creates a broker-backed delivery strategy.
func NewBrokerDelivery(rd pkgRedis.IRedis, local realtime.Delivery, prefix string, logger log.Logger) *BrokerDelivery {
	return &BrokerDelivery{
		redis:  rd,
		local:  local,
		prefix: prefix,
		logger: logger,
	}
}

// DeliverToUser publishes to the user's notify channel. The publishing
// instance receives its own message back through the subscriber, so a
// successful publish must not also fan out locally.
func (d *BrokerDelivery) DeliverToUser(ctx context.Context, userID string, data []byte) error {
	channel := d.prefix + ":notify:user:" + userID
	if err := d.redis.GetClient().Publish(ctx, channel, data).Err(); err != nil {
		d.logger.Warnf(ctx, "broker publish failed on %s, falling back to local delivery: %v", channel, err)
		return d.local.DeliverToUser(ctx, userID, data)
	}
	return nil
}

// DeliverToConversation publishes to the conversation's chat channel.
func (d *BrokerDelivery) DeliverToConversation(ctx context.Context, key model.ConversationKey, data []byte) error {
	channel := d.prefix + ":chat:" + string(key)
	if err := d.redis.GetClient().Publish(ctx, channel, data).Err(); err != nil {
		d.logger.Warnf(ctx, "broker publish failed on %s, falling back to local delivery: %v", channel, err)
		return d.local.DeliverToConversation(ctx, key, data)
	}
	return nil
}
