package repository

import (
	"context"

	"blognest-api/internal/model"
	"blognest-api/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	Append(ctx context.Context, notification model.Notification) (model.Notification, error)
	Get(ctx context.Context, opts GetOptions) ([]model.Notification, paginator.Paginator, error)
	Detail(ctx context.Context, id string) (model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	CountUnreadByTypes(ctx context.Context, userID string, types []model.NotificationType) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string, types []model.NotificationType) error
}
