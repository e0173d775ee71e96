package http

import "blognest-api/internal/friend"

type sendRequestReq struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Message    string `json:"message"`
}

func (r sendRequestReq) toInput() friend.SendRequestInput {
	return friend.SendRequestInput{
		ReceiverID: r.ReceiverID,
		Message:    r.Message,
	}
}

type respondReq struct {
	Accept bool `json:"accept"`
}

type pendingCountResp struct {
	Count int64 `json:"count"`
}

type isFriendResp struct {
	IsFriend bool `json:"isFriend"`
}

type isFollowingResp struct {
	IsFollowing bool `json:"isFollowing"`
}
