package friend

import "blognest-api/internal/model"

type SendRequestInput struct {
	ReceiverID string
	Message    string
}

type RespondInput struct {
	RequestID string
	Accept    bool
}

// PendingRequest is one incoming request with its sender profile.
type PendingRequest struct {
	Request        model.FriendRequest `json:"request"`
	SenderNickname string              `json:"senderNickname,omitempty"`
	SenderAvatar   string              `json:"senderAvatar,omitempty"`
}

type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
