package postgres

import (
	"time"

	"blognest-api/internal/message/repository"
	pkgLog "blognest-api/pkg/log"

	"github.com/aarondl/sqlboiler/v4/boil"
)

type implRepository struct {
	l     pkgLog.Logger
	db    boil.ContextExecutor
	clock func() time.Time
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db boil.ContextExecutor) *implRepository {
	return &implRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}
