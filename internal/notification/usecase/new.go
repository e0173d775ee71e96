package usecase

import (
	"blognest-api/internal/notification"
	"blognest-api/internal/notification/repository"
	"blognest-api/internal/realtime"
	pkgLog "blognest-api/pkg/log"
)

type implUsecase struct {
	l         pkgLog.Logger
	repo      repository.Repository
	publisher *realtime.Publisher
	registry  *realtime.Registry
	users     notification.UserDirectory
	pending   notification.PendingRequestCounter
}

var _ notification.UseCase = &implUsecase{}

func New(
	l pkgLog.Logger,
	repo repository.Repository,
	publisher *realtime.Publisher,
	registry *realtime.Registry,
	users notification.UserDirectory,
) *implUsecase {
	return &implUsecase{
		l:         l,
		repo:      repo,
		publisher: publisher,
		registry:  registry,
		users:     users,
	}
}

// SetPendingCounter breaks the construction cycle with the friend
// usecase, which both counts pending requests and sends notifications.
func (uc *implUsecase) SetPendingCounter(pending notification.PendingRequestCounter) {
	uc.pending = pending
}
