package http

import (
	"blognest-api/internal/view"
	"blognest-api/pkg/discord"
	pkgLog "blognest-api/pkg/log"
)

type Handler struct {
	l  pkgLog.Logger
	uc view.UseCase
	d  discord.IDiscord
}

func New(l pkgLog.Logger, uc view.UseCase, d discord.IDiscord) *Handler {
	return &Handler{
		l:  l,
		uc: uc,
		d:  d,
	}
}
