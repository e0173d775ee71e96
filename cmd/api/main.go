package main

import (
	"context"
	"fmt"

	"blognest-api/config"
	"blognest-api/config/minio"
	"blognest-api/config/postgre"
	"blognest-api/config/redis"
	"blognest-api/internal/httpserver"
	"blognest-api/pkg/discord"
	"blognest-api/pkg/log"
	"blognest-api/pkg/scope"
)

// @title       BlogNest API
// @description Social blogging API with real-time notifications and private messaging.
// @version     1.0
// @host        localhost:8080
// @schemes     http
// @BasePath    /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	// Initialize PostgreSQL
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Initialize Redis
	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer redis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)

	// Initialize MinIO
	minioClient, err := minio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Error(ctx, "Failed to connect to MinIO: ", err)
		return
	}
	defer minio.Disconnect(ctx)
	logger.Infof(ctx, "MinIO connected successfully to %s", cfg.MinIO.Endpoint)

	// Initialize Discord. Bug reports are optional; without a webhook
	// the reporter stays nil and error responses skip it.
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookURL != "" {
		discordClient, err = discord.New(logger, cfg.Discord.WebhookURL)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Discord: ", err)
			return
		}
	}

	// Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Config:     *cfg,
		JWTManager: scope.New(cfg.JWT.SecretKey),

		DB:      postgresDB,
		Redis:   redisClient,
		Storage: minioClient,
		Discord: discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
