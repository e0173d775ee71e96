package realtime

import (
	"context"
	"sync"
	"sync/atomic"

	"blognest-api/internal/model"
	"blognest-api/pkg/log"
)

// ConversationRegistry tracks open chat streams keyed by the canonical
// conversation key of a user pair. Frames sent to a key reach only the
// channels subscribed to that key, so parallel conversations never
// leak into each other.
type ConversationRegistry struct {
	channels map[model.ConversationKey][]*Channel
	mu       sync.RWMutex

	totalFramesSent    atomic.Int64
	totalFramesDropped atomic.Int64

	bufferSize int

	logger log.Logger
}

// NewConversationRegistry creates a new conversation registry.
func NewConversationRegistry(logger log.Logger, bufferSize int) *ConversationRegistry {
	return &ConversationRegistry{
		channels:   make(map[model.ConversationKey][]*Channel),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Subscribe opens a chat channel for userID on the given conversation.
// The caller must be one of the two participants. Initial frames (the
// history snapshot) are queued before the channel joins fan-out, so a
// concurrent live message cannot arrive ahead of the snapshot.
func (r *ConversationRegistry) Subscribe(key model.ConversationKey, userID string, initial ...Frame) (*Channel, error) {
	if !key.Has(userID) {
		return nil, ErrNotParticipant
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ch := newChannel(userID, key, r.bufferSize)
	for _, frame := range initial {
		ch.Push(frame)
	}
	r.channels[key] = append(r.channels[key], ch)

	r.logger.Debugf(context.Background(),
		"Conversation subscribed: %s by user %s (channels: %d)", key, userID, len(r.channels[key]))
	return ch, nil
}

// Unregister removes the channel from its conversation and closes it.
// Idempotent.
func (r *ConversationRegistry) Unregister(ch *Channel) {
	if ch == nil {
		return
	}

	r.mu.Lock()
	key := ch.conversationKey
	channels, exists := r.channels[key]
	if exists {
		for i, c := range channels {
			if c == ch {
				r.channels[key] = append(channels[:i], channels[i+1:]...)
				break
			}
		}
		if len(r.channels[key]) == 0 {
			delete(r.channels, key)
		}
	}
	r.mu.Unlock()

	ch.Close()
}

// SendToConversation fans out one frame to every channel subscribed to
// the conversation, both participants included. Returns the number of
// channels that accepted the frame.
func (r *ConversationRegistry) SendToConversation(key model.ConversationKey, frame Frame) int {
	r.mu.RLock()
	channels := make([]*Channel, len(r.channels[key]))
	copy(channels, r.channels[key])
	r.mu.RUnlock()

	if len(channels) == 0 {
		return 0
	}

	sentCount := 0
	for _, ch := range channels {
		switch ch.Push(frame) {
		case PushDelivered:
			sentCount++
		case PushClosed:
			r.totalFramesDropped.Add(1)
			r.Unregister(ch)
		case PushBufferFull:
			r.logger.Warnf(context.Background(), "Dropping slow chat channel on %s (buffer full)", key)
			r.totalFramesDropped.Add(1)
			r.Unregister(ch)
		}
	}

	r.totalFramesSent.Add(int64(sentCount))
	return sentCount
}

// CloseAll closes every chat channel, for graceful shutdown.
func (r *ConversationRegistry) CloseAll() {
	r.mu.Lock()
	channels := r.channels
	r.channels = make(map[model.ConversationKey][]*Channel)
	r.mu.Unlock()

	for _, keyChannels := range channels {
		for _, ch := range keyChannels {
			ch.Close()
		}
	}
}

// Stats returns conversation registry statistics.
func (r *ConversationRegistry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, channels := range r.channels {
		total += len(channels)
	}
	return RegistryStats{
		ActiveChannels:     total,
		TotalUniqueUsers:   len(r.channels),
		TotalFramesSent:    r.totalFramesSent.Load(),
		TotalFramesDropped: r.totalFramesDropped.Load(),
	}
}
