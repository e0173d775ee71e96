package repository

import "context"

//go:generate mockery --name Repository
type Repository interface {
	// AddViews adds delta to the post's durable view counter,
	// creating the row when absent.
	AddViews(ctx context.Context, postID string, delta int64) error
	Count(ctx context.Context, postID string) (int64, error)
}
