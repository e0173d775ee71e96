package middleware

import (
	"blognest-api/config"
	"blognest-api/pkg/log"
	"blognest-api/pkg/scope"
)

type Middleware struct {
	logger       log.Logger
	jwtManager   scope.Manager
	cookieConfig config.CookieConfig
}

func New(logger log.Logger, jwtManager scope.Manager, cookieConfig config.CookieConfig) Middleware {
	return Middleware{
		logger:       logger,
		jwtManager:   jwtManager,
		cookieConfig: cookieConfig,
	}
}
