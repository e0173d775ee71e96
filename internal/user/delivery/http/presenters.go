package http

import (
	"time"

	"blognest-api/internal/model"
	"blognest-api/internal/user"
)

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
}

func (r registerReq) toInput() user.RegisterInput {
	return user.RegisterInput{
		Username: r.Username,
		Password: r.Password,
		Nickname: r.Nickname,
	}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r loginReq) toInput() user.LoginInput {
	return user.LoginInput{
		Username: r.Username,
		Password: r.Password,
	}
}

type updateProfileReq struct {
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
}

func (r updateProfileReq) toInput() user.UpdateProfileInput {
	return user.UpdateProfileInput{
		Nickname:  r.Nickname,
		AvatarURL: r.AvatarURL,
		Bio:       r.Bio,
	}
}

type userResp struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResp(u model.User) userResp {
	resp := userResp{
		ID:        u.ID,
		Username:  u.Username,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
	}
	if u.AvatarURL != nil {
		resp.AvatarURL = *u.AvatarURL
	}
	if u.Bio != nil {
		resp.Bio = *u.Bio
	}
	return resp
}

type loginResp struct {
	User  userResp `json:"user"`
	Token string   `json:"token"`
}
