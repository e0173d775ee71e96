package realtime

import (
	"sync"
	"time"

	"blognest-api/internal/model"
)

// Channel is one live SSE stream owned by a single user. Frames pushed
// to the channel are drained by the HTTP delivery layer and written to
// the response stream.
type Channel struct {
	userID          string
	conversationKey model.ConversationKey
	send            chan Frame
	createdAt       time.Time

	mu     sync.Mutex
	closed bool
}

func newChannel(userID string, key model.ConversationKey, bufferSize int) *Channel {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Channel{
		userID:          userID,
		conversationKey: key,
		send:            make(chan Frame, bufferSize),
		createdAt:       time.Now(),
	}
}

// UserID returns the owner of the channel.
func (c *Channel) UserID() string {
	return c.userID
}

// ConversationKey returns the conversation this channel is scoped to,
// or empty for a general notification stream.
func (c *Channel) ConversationKey() model.ConversationKey {
	return c.conversationKey
}

// Receive returns the frame stream for the delivery layer to drain.
func (c *Channel) Receive() <-chan Frame {
	return c.send
}

// Push queues a frame without blocking. The outcome tells the caller
// whether the frame was accepted, the stream is gone, or the client is
// too slow to keep up.
func (c *Channel) Push(frame Frame) PushOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return PushClosed
	}
	select {
	case c.send <- frame:
		return PushDelivered
	default:
		return PushBufferFull
	}
}

// Close marks the channel closed and closes the frame stream.
// Safe to call more than once.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// State returns the current lifecycle state.
func (c *Channel) State() ChannelState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return StateClosed
	}
	return StateOpen
}

// Info returns a metadata snapshot.
func (c *Channel) Info() ChannelInfo {
	return ChannelInfo{
		UserID:          c.userID,
		ConversationKey: c.conversationKey,
		CreatedAt:       c.createdAt,
		Buffered:        len(c.send),
	}
}
