package repository

import (
	"blognest-api/internal/model"
)

// Filter contains filtering options for user queries.
type Filter struct {
	IDs      []string
	Username string
	IsActive *bool
}

// CreateOptions contains options for creating a user.
type CreateOptions struct {
	User model.User
}

// UpdateOptions contains options for updating a user.
type UpdateOptions struct {
	User model.User
}

// GetOneOptions contains options for getting a single user.
type GetOneOptions struct {
	Username string
	ID       string
}

// ListOptions contains options for listing users.
type ListOptions struct {
	Filter Filter
}
