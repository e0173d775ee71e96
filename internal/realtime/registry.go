package realtime

import (
	"context"
	"sync"
	"sync/atomic"

	"blognest-api/pkg/log"
)

// Registry tracks every open notification stream in this process,
// keyed by user ID. A user may hold several channels at once (multiple
// tabs or devices). The registry is an explicit instance wired at
// startup, not package-level state.
type Registry struct {
	channels map[string][]*Channel
	mu       sync.RWMutex

	// Metrics
	totalFramesSent     atomic.Int64
	totalFramesDropped  atomic.Int64
	totalChannelsOpened atomic.Int64
	totalChannelsClosed atomic.Int64

	// Configuration
	bufferSize int
	maxPerUser int

	logger log.Logger
}

// NewRegistry creates a new connection registry.
func NewRegistry(logger log.Logger, bufferSize, maxPerUser int) *Registry {
	return &Registry{
		channels:   make(map[string][]*Channel),
		bufferSize: bufferSize,
		maxPerUser: maxPerUser,
		logger:     logger,
	}
}

// Subscribe opens a new channel for userID. The initial frames are
// queued into the channel buffer before it becomes visible to fan-out,
// so no live push can interleave ahead of them.
func (r *Registry) Subscribe(userID string, initial ...Frame) (*Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxPerUser > 0 && len(r.channels[userID]) >= r.maxPerUser {
		r.logger.Warnf(context.Background(), "Max channels reached for user: %s", userID)
		return nil, ErrTooManyChannels
	}

	ch := newChannel(userID, "", r.bufferSize)
	for _, frame := range initial {
		ch.Push(frame)
	}
	r.channels[userID] = append(r.channels[userID], ch)
	r.totalChannelsOpened.Add(1)

	r.logger.Debugf(context.Background(),
		"User subscribed: %s (user channels: %d)", userID, len(r.channels[userID]))
	return ch, nil
}

// Unregister removes the channel and closes it. Calling it again for
// the same channel is a no-op.
func (r *Registry) Unregister(ch *Channel) {
	if ch == nil {
		return
	}

	r.mu.Lock()
	channels, exists := r.channels[ch.userID]
	removed := false
	if exists {
		for i, c := range channels {
			if c == ch {
				r.channels[ch.userID] = append(channels[:i], channels[i+1:]...)
				removed = true
				break
			}
		}
		if len(r.channels[ch.userID]) == 0 {
			delete(r.channels, ch.userID)
		}
	}
	r.mu.Unlock()

	// Close outside the lock; Close is idempotent so a second
	// Unregister for an already-removed channel stays harmless.
	ch.Close()
	if removed {
		r.totalChannelsClosed.Add(1)
		r.logger.Debugf(context.Background(), "User channel closed: %s", ch.userID)
	}
}

// SendToUser fans out one frame to every open channel of userID.
// Channels that turn out closed or too slow are dropped from the
// registry; other channels are unaffected. Returns the number of
// channels that accepted the frame.
func (r *Registry) SendToUser(userID string, frame Frame) int {
	r.mu.RLock()
	channels := make([]*Channel, len(r.channels[userID]))
	copy(channels, r.channels[userID])
	r.mu.RUnlock()

	if len(channels) == 0 {
		// User is offline locally; nothing to do.
		return 0
	}

	sentCount := 0
	for _, ch := range channels {
		switch ch.Push(frame) {
		case PushDelivered:
			sentCount++
		case PushClosed:
			r.logger.Debugf(context.Background(), "Dropping closed channel for user %s", userID)
			r.totalFramesDropped.Add(1)
			r.Unregister(ch)
		case PushBufferFull:
			r.logger.Warnf(context.Background(), "Dropping slow channel for user %s (buffer full)", userID)
			r.totalFramesDropped.Add(1)
			r.Unregister(ch)
		}
	}

	r.totalFramesSent.Add(int64(sentCount))
	return sentCount
}

// IsOnline reports whether userID has at least one open channel.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels[userID]) > 0
}

// ChannelsFor returns a point-in-time copy of the user's channels.
func (r *Registry) ChannelsFor(userID string) []*Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]*Channel, len(r.channels[userID]))
	copy(channels, r.channels[userID])
	return channels
}

// CloseAll closes every channel, for graceful shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	channels := r.channels
	r.channels = make(map[string][]*Channel)
	r.mu.Unlock()

	for userID, userChannels := range channels {
		for _, ch := range userChannels {
			ch.Close()
			r.totalChannelsClosed.Add(1)
		}
		r.logger.Debugf(context.Background(), "Closed all channels for user: %s", userID)
	}
}

// Stats returns registry statistics.
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, channels := range r.channels {
		total += len(channels)
	}
	return RegistryStats{
		ActiveChannels:      total,
		TotalUniqueUsers:    len(r.channels),
		TotalFramesSent:     r.totalFramesSent.Load(),
		TotalFramesDropped:  r.totalFramesDropped.Load(),
		TotalChannelsOpened: r.totalChannelsOpened.Load(),
		TotalChannelsClosed: r.totalChannelsClosed.Load(),
	}
}
