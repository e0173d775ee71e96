package redis

import (
	"context"
	"fmt"
	"strings"

	"blognest-api/internal/model"
	"blognest-api/internal/realtime"

	"github.com/redis/go-redis/v9"
)

func (s *subscriber) Start() error {
	ctx := context.Background()

	patterns := []string{
		s.prefix + ":notify:user:*",
		s.prefix + ":chat:*",
	}

	client := s.redis.GetClient()
	s.pubsub = client.PSubscribe(ctx, patterns...)

	// Wait for confirmation that subscription is created
	if _, err := s.pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	s.wg.Add(1)
	go s.listen(ctx)

	s.logger.Infof(ctx, "Redis subscriber started on patterns: %v", patterns)
	return nil
}

func (s *subscriber) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warnf(ctx, "redis pubsub channel closed")
				return
			}
			s.handleMessage(ctx, msg)
		case <-s.quit:
			return
		}
	}
}

func (s *subscriber) handleMessage(ctx context.Context, msg *redis.Message) {
	target, id, ok := s.parseChannel(msg.Channel)
	if !ok {
		s.logger.Warnf(ctx, "unrecognized channel: %s", msg.Channel)
		return
	}

	frame := realtime.Frame{Event: realtime.EventMessage, Data: []byte(msg.Payload)}
	switch target {
	case targetUser:
		s.registry.SendToUser(id, frame)
	case targetConversation:
		s.conversations.SendToConversation(model.ConversationKey(id), frame)
	}
}

type channelTarget int

const (
	targetUser channelTarget = iota
	targetConversation
)

// parseChannel splits "<prefix>:notify:user:<id>" and
// "<prefix>:chat:<a>:<b>" into a routing target and its key.
func (s *subscriber) parseChannel(channel string) (channelTarget, string, bool) {
	rest, found := strings.CutPrefix(channel, s.prefix+":")
	if !found {
		return 0, "", false
	}
	if id, found := strings.CutPrefix(rest, "notify:user:"); found && id != "" {
		return targetUser, id, true
	}
	if key, found := strings.CutPrefix(rest, "chat:"); found && key != "" {
		return targetConversation, key, true
	}
	return 0, "", false
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	close(s.quit)
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(ctx, "failed to close pubsub: %v", err)
		}
	}
	s.wg.Wait()
	s.logger.Infof(ctx, "Redis subscriber stopped")
	return nil
}
