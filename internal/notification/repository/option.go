package repository

import (
	"blognest-api/internal/model"
	"blognest-api/pkg/paginator"
)

// Filter contains filtering options for notification queries.
type Filter struct {
	ReceiverID string
	Types      []model.NotificationType
	UnreadOnly bool
}

// GetOptions contains options for paginated notification listing.
type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}
