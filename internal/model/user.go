package model

import "time"

// User represents a user entity in the domain layer.
// This is a safe type model that doesn't depend on database-specific types.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Nickname     string     `json:"nickname"`
	PasswordHash string     `json:"-"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// DisplayName returns the nickname, falling back to the username.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

// Avatar returns the avatar URL or empty string.
func (u *User) Avatar() string {
	if u.AvatarURL == nil {
		return ""
	}
	return *u.AvatarURL
}
