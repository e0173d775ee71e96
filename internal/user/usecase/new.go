package usecase

import (
	"blognest-api/internal/user"
	"blognest-api/internal/user/repository"
	pkgLog "blognest-api/pkg/log"
	"blognest-api/pkg/scope"
)

type usecase struct {
	l            pkgLog.Logger
	repo         repository.Repository
	scopeManager scope.Manager
}

func New(l pkgLog.Logger, repo repository.Repository, scopeManager scope.Manager) user.UseCase {
	return &usecase{
		l:            l,
		repo:         repo,
		scopeManager: scopeManager,
	}
}
