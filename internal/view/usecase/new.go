package usecase

import (
	"blognest-api/internal/view"
	"blognest-api/internal/view/repository"
	pkgLog "blognest-api/pkg/log"
	pkgRedis "blognest-api/pkg/redis"
)

// pendingViewsKey is the Redis hash buffering view increments between
// flushes, field = post ID, value = pending delta.
const pendingViewsKey = "blognest:views:pending"

type implUsecase struct {
	l     pkgLog.Logger
	repo  repository.Repository
	redis pkgRedis.IRedis
}

var _ view.UseCase = &implUsecase{}

func New(l pkgLog.Logger, repo repository.Repository, redis pkgRedis.IRedis) *implUsecase {
	return &implUsecase{
		l:     l,
		repo:  repo,
		redis: redis,
	}
}
