package realtime

import "errors"

var (
	// ErrTooManyChannels is returned when a user exceeds the per-user channel cap.
	ErrTooManyChannels = errors.New("too many open channels for user")
	// ErrNotParticipant is returned when a user subscribes to a conversation they are not part of.
	ErrNotParticipant = errors.New("user is not a participant of the conversation")
)
