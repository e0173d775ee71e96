package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds all service configuration.
type Config struct {
	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Environment Configuration
	Environment EnvironmentConfig

	// Storage Configuration
	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig

	// Real-time Delivery Configuration
	SSE    SSEConfig
	Broker BrokerConfig

	// Domain Configuration
	Message MessageConfig
	View    ViewConfig

	// Authentication & Security Configuration
	JWT    JWTConfig
	Cookie CookieConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// HTTPServerConfig is the configuration for the HTTP server.
type HTTPServerConfig struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"HTTP_PORT" envDefault:"8080"`
	Mode string `env:"HTTP_MODE" envDefault:"release"`
}

// PostgresConfig is the configuration for PostgreSQL.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"blognest"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
}

// RedisConfig is the configuration for Redis.
// Note: Only standalone mode is supported.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// MinIOConfig is the configuration for MinIO object storage.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Region    string `env:"MINIO_REGION" envDefault:"us-east-1"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"blognest-media"`
}

// SSEConfig is the configuration for server-sent event streams.
type SSEConfig struct {
	SendBufferSize     int           `env:"SSE_SEND_BUFFER_SIZE" envDefault:"64"`
	HeartbeatInterval  time.Duration `env:"SSE_HEARTBEAT_INTERVAL" envDefault:"30s"`
	MaxChannelsPerUser int           `env:"SSE_MAX_CHANNELS_PER_USER" envDefault:"8"`
}

// BrokerConfig is the configuration for cross-instance event bridging.
type BrokerConfig struct {
	Enabled       bool   `env:"BROKER_ENABLED" envDefault:"false"`
	ChannelPrefix string `env:"BROKER_CHANNEL_PREFIX" envDefault:"blognest"`
}

// MessageConfig is the configuration for private messaging rules.
type MessageConfig struct {
	RecallWindow       time.Duration `env:"MESSAGE_RECALL_WINDOW" envDefault:"2m"`
	HistoryPageSize    int           `env:"MESSAGE_HISTORY_PAGE_SIZE" envDefault:"20"`
	MediaRequiresTrust bool          `env:"MESSAGE_MEDIA_REQUIRES_TRUST" envDefault:"true"`
}

// ViewConfig is the configuration for the view counter flusher.
type ViewConfig struct {
	FlushInterval time.Duration `env:"VIEW_FLUSH_INTERVAL" envDefault:"1m"`
}

// JWTConfig is the configuration for the JWT.
type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET_KEY"`
}

// CookieConfig is the configuration for HttpOnly cookie authentication.
type CookieConfig struct {
	Domain   string `env:"COOKIE_DOMAIN"`
	Secure   bool   `env:"COOKIE_SECURE" envDefault:"true"`
	SameSite string `env:"COOKIE_SAMESITE" envDefault:"Lax"`
	MaxAge   int    `env:"COOKIE_MAX_AGE" envDefault:"7200"`
	Name     string `env:"COOKIE_NAME" envDefault:"blognest_auth_token"`
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"true"`
}

// EnvironmentConfig is the configuration for environment-aware features.
type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"production"`
}

// DiscordConfig is the configuration for Discord webhook notifications.
type DiscordConfig struct {
	WebhookURL string `env:"DISCORD_WEBHOOK_URL"`
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWT.SecretKey) < 32 {
		return fmt.Errorf("config: JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.SSE.SendBufferSize <= 0 {
		return fmt.Errorf("config: SSE_SEND_BUFFER_SIZE must be positive")
	}
	if c.Message.RecallWindow <= 0 {
		return fmt.Errorf("config: MESSAGE_RECALL_WINDOW must be positive")
	}
	return nil
}
