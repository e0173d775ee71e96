package httpserver

import (
	"database/sql"
	"errors"

	"blognest-api/config"
	"blognest-api/internal/realtime"
	redisDelivery "blognest-api/internal/realtime/delivery/redis"
	viewUC "blognest-api/internal/view/usecase"
	"blognest-api/pkg/discord"
	"blognest-api/pkg/log"
	pkgMinio "blognest-api/pkg/minio"
	pkgRedis "blognest-api/pkg/redis"
	"blognest-api/pkg/scope"

	"github.com/gin-gonic/gin"
)

// HTTPServer wires every domain and owns the process lifecycle.
// New() only builds and validates dependencies; Run() (in
// httpserver.go) starts the background services and serves HTTP.
type HTTPServer struct {
	gin    *gin.Engine
	logger log.Logger
	cfg    config.Config

	// Real-time core
	registry      *realtime.Registry
	conversations *realtime.ConversationRegistry
	subscriber    redisDelivery.Subscriber
	viewFlusher   *viewUC.Flusher

	// Auth & security
	jwtMgr scope.Manager

	// External services
	db      *sql.DB
	redis   pkgRedis.IRedis
	storage pkgMinio.MinIO
	discord discord.IDiscord
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Config     config.Config
	JWTManager scope.Manager

	DB      *sql.DB
	Redis   pkgRedis.IRedis
	Storage pkgMinio.MinIO
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run().
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Config.HTTPServer.Mode)

	srv := &HTTPServer{
		gin:    gin.Default(),
		logger: logger,
		cfg:    cfg.Config,

		jwtMgr: cfg.JWTManager,

		db:      cfg.DB,
		redis:   cfg.Redis,
		storage: cfg.Storage,
		discord: cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.cfg.HTTPServer.Port == 0 {
		return errors.New("port is required")
	}
	if s.jwtMgr == nil {
		return errors.New("JWTManager is required")
	}
	if s.db == nil {
		return errors.New("database handle is required")
	}
	if s.redis == nil {
		return errors.New("Redis client is required")
	}

	return nil
}
