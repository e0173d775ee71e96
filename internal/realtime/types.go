package realtime

import (
	"time"

	"blognest-api/internal/model"
)

// EventName is the SSE event field value for a frame.
const (
	EventMessage   = "message"
	EventError     = "error"
	EventHeartbeat = "heartbeat"
)

// Frame is one unit of data queued for an SSE stream.
type Frame struct {
	Event string
	Data  []byte
}

// PushOutcome reports what happened to a single push attempt.
// A closed channel is a routine data outcome, not an error.
type PushOutcome int

const (
	PushDelivered PushOutcome = iota
	PushClosed
	PushBufferFull
)

func (o PushOutcome) String() string {
	switch o {
	case PushDelivered:
		return "delivered"
	case PushClosed:
		return "closed"
	case PushBufferFull:
		return "buffer_full"
	default:
		return "unknown"
	}
}

// ChannelState is the lifecycle state of a channel.
type ChannelState int32

const (
	StateOpen ChannelState = iota
	StateClosed
)

// Channel metadata snapshot for stats and debugging.
type ChannelInfo struct {
	UserID          string                `json:"user_id"`
	ConversationKey model.ConversationKey `json:"conversation_key,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	Buffered        int                   `json:"buffered"`
}

// RegistryStats represents registry statistics.
type RegistryStats struct {
	ActiveChannels      int   `json:"active_channels"`
	TotalUniqueUsers    int   `json:"total_unique_users"`
	TotalFramesSent     int64 `json:"total_frames_sent"`
	TotalFramesDropped  int64 `json:"total_frames_dropped"`
	TotalChannelsOpened int64 `json:"total_channels_opened"`
	TotalChannelsClosed int64 `json:"total_channels_closed"`
}
