package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret has no default on purpose: starting with a guessable signing
	// secret is worse than not starting at all.
	JWTSecret string `env:"JWT_SECRET"`

	SessionLifetime time.Duration `env:"SESSION_LIFETIME, default=24h"`
	SecureCookies   bool          `env:"SECURE_COOKIES,   default=true"`

	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type RateLimitConfig struct {
	MaxRequests int           `env:"RATE_LIMIT_MAX,    default=10"`
	Window      time.Duration `env:"RATE_LIMIT_WINDOW, default=1m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=membership"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET must be set")

// Load reads configuration from environment variables using go-envconfig and
// rejects configurations the service must not start with.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &cfg, nil
}
