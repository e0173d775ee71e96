package postgres

import (
	"time"

	"blognest-api/internal/model"

	"github.com/aarondl/null/v8"
)

const userColumns = `id, username, nickname, password_hash, avatar_url, bio, is_active, created_at, updated_at, deleted_at`

type userRow struct {
	ID           string      `boil:"id"`
	Username     string      `boil:"username"`
	Nickname     string      `boil:"nickname"`
	PasswordHash null.String `boil:"password_hash"`
	AvatarURL    null.String `boil:"avatar_url"`
	Bio          null.String `boil:"bio"`
	IsActive     null.Bool   `boil:"is_active"`
	CreatedAt    time.Time   `boil:"created_at"`
	UpdatedAt    time.Time   `boil:"updated_at"`
	DeletedAt    null.Time   `boil:"deleted_at"`
}

func (r userRow) toModel() model.User {
	usr := model.User{
		ID:           r.ID,
		Username:     r.Username,
		Nickname:     r.Nickname,
		PasswordHash: r.PasswordHash.String,
		IsActive:     r.IsActive.Bool,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.AvatarURL.Valid {
		usr.AvatarURL = &r.AvatarURL.String
	}
	if r.Bio.Valid {
		usr.Bio = &r.Bio.String
	}
	if r.DeletedAt.Valid {
		usr.DeletedAt = &r.DeletedAt.Time
	}
	return usr
}
