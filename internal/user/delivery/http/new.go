package http

import (
	"blognest-api/config"
	"blognest-api/internal/user"
	"blognest-api/pkg/discord"
	pkgLog "blognest-api/pkg/log"
)

type Handler struct {
	l         pkgLog.Logger
	uc        user.UseCase
	d         discord.IDiscord
	cookieCfg config.CookieConfig
}

func New(l pkgLog.Logger, uc user.UseCase, d discord.IDiscord, cookieCfg config.CookieConfig) *Handler {
	return &Handler{
		l:         l,
		uc:        uc,
		d:         d,
		cookieCfg: cookieCfg,
	}
}
