package user

import (
	"blognest-api/internal/model"
)

type RegisterInput struct {
	Username string
	Password string
	Nickname string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	User  model.User
	Token string
}

type UpdateProfileInput struct {
	Nickname  string
	AvatarURL string
	Bio       string
}

type UserOutput struct {
	User model.User
}

type GetOneInput struct {
	Username string
	ID       string
}

type ListInput struct {
	Filter Filter
}

type Filter struct {
	IDs []string
}
