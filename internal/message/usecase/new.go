package usecase

import (
	"time"

	"blognest-api/config"
	"blognest-api/internal/message"
	"blognest-api/internal/message/repository"
	"blognest-api/internal/realtime"
	pkgLog "blognest-api/pkg/log"
	pkgMinio "blognest-api/pkg/minio"
)

type implUsecase struct {
	l             pkgLog.Logger
	repo          repository.Repository
	publisher     *realtime.Publisher
	conversations *realtime.ConversationRegistry
	friends       message.FriendChecker
	users         message.UserDirectory
	storage       pkgMinio.MinIO
	cfg           config.MessageConfig
	bucket        string
	clock         func() time.Time
}

var _ message.UseCase = &implUsecase{}

func New(
	l pkgLog.Logger,
	repo repository.Repository,
	publisher *realtime.Publisher,
	conversations *realtime.ConversationRegistry,
	friends message.FriendChecker,
	users message.UserDirectory,
	storage pkgMinio.MinIO,
	cfg config.MessageConfig,
	bucket string,
) *implUsecase {
	return &implUsecase{
		l:             l,
		repo:          repo,
		publisher:     publisher,
		conversations: conversations,
		friends:       friends,
		users:         users,
		storage:       storage,
		cfg:           cfg,
		bucket:        bucket,
		clock:         time.Now,
	}
}
