package notification

import (
	"blognest-api/internal/model"
	"blognest-api/pkg/paginator"
)

type SendInput struct {
	Type             string
	SenderID         string
	ReceiverID       string
	Message          string
	ReferenceID      string
	ReferenceExtraID string
}

type GetInput struct {
	Types         []model.NotificationType
	UnreadOnly    bool
	PaginateQuery paginator.PaginateQuery
}

type GetOutput struct {
	Events    []model.NotificationEvent
	Paginator paginator.Paginator
}

type MarkAllReadInput struct {
	Types []model.NotificationType
}

// ConnectedPayload is the first frame of every notification stream.
type ConnectedPayload struct {
	Type            model.NotificationType `json:"type"`
	Message         string                 `json:"message"`
	PendingRequests int64                  `json:"pendingRequests"`
}
