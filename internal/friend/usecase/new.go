package usecase

import (
	"blognest-api/internal/friend"
	"blognest-api/internal/friend/repository"
	pkgLog "blognest-api/pkg/log"
)

type implUsecase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	notifier friend.Notifier
	users    friend.UserDirectory
}

var _ friend.UseCase = &implUsecase{}

func New(
	l pkgLog.Logger,
	repo repository.Repository,
	notifier friend.Notifier,
	users friend.UserDirectory,
) *implUsecase {
	return &implUsecase{
		l:        l,
		repo:     repo,
		notifier: notifier,
		users:    users,
	}
}
