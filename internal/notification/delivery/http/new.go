package http

import (
	"blognest-api/config"
	"blognest-api/internal/notification"
	"blognest-api/pkg/discord"
	pkgLog "blognest-api/pkg/log"
	"blognest-api/pkg/scope"
)

type Handler struct {
	l          pkgLog.Logger
	uc         notification.UseCase
	jwtManager scope.Manager
	d          discord.IDiscord
	sseConfig  config.SSEConfig
	cookieName string
}

func New(
	l pkgLog.Logger,
	uc notification.UseCase,
	jwtManager scope.Manager,
	d discord.IDiscord,
	sseConfig config.SSEConfig,
	cookieName string,
) *Handler {
	return &Handler{
		l:          l,
		uc:         uc,
		jwtManager: jwtManager,
		d:          d,
		sseConfig:  sseConfig,
		cookieName: cookieName,
	}
}
