package redis

import (
	"context"
	"sync"

	"blognest-api/internal/realtime"
	"blognest-api/pkg/log"
	pkgRedis "blognest-api/pkg/redis"

	"github.com/redis/go-redis/v9"
)

// Subscriber receives events published by other instances and fans
// them out to the local registries. Events arriving here were already
// persisted by the publishing instance, so the bridge never touches
// the durable log.
type Subscriber interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis         pkgRedis.IRedis
	registry      *realtime.Registry
	conversations *realtime.ConversationRegistry
	prefix        string
	logger        log.Logger

	// Lifecycle fields
	pubsub *redis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
}

// New creates the broker-side subscriber.
func New(rd pkgRedis.IRedis, registry *realtime.Registry, conversations *realtime.ConversationRegistry, prefix string, logger log.Logger) Subscriber {
	return &subscriber{
		redis:         rd,
		registry:      registry,
		conversations: conversations,
		prefix:        prefix,
		logger:        logger,
		quit:          make(chan struct{}),
	}
}
