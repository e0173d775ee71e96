package repository

import (
	"blognest-api/internal/model"
	"blognest-api/pkg/paginator"
)

// PageOptions selects one viewer's page of a conversation.
type PageOptions struct {
	Key           model.ConversationKey
	ViewerID      string
	PaginateQuery paginator.PaginateQuery
}
