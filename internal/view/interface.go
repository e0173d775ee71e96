package view

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Increment buffers one view for the post in Redis and returns the
	// running total including unflushed views.
	Increment(ctx context.Context, postID string) (int64, error)
	// Count returns the durable total plus the unflushed buffer.
	Count(ctx context.Context, postID string) (int64, error)
	// Flush drains the Redis buffer into the durable store.
	Flush(ctx context.Context) error
}
