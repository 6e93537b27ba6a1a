// Package config reads the gateway configuration from environment
// variables using go-envconfig.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevFallbackJWTSecret is only ever used when ENV=development and no
// JWT_SECRET is set. Outside development a missing secret aborts startup.
const DevFallbackJWTSecret = "dev-only-insecure-secret"

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required outside development")

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=30m"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Redis    RedisConfig
}

type UpstreamConfig struct {
	OrderServiceURL string        `env:"ORDER_SERVICE_URL,     default=http://localhost:8002"`
	Timeout         time.Duration `env:"UPSTREAM_TIMEOUT,      default=30s"`
	MaxAttempts     int           `env:"UPSTREAM_MAX_ATTEMPTS, default=3"`
	RetryDelay      time.Duration `env:"UPSTREAM_RETRY_DELAY,  default=1s"`
}

// RedisConfig selects the shared cache backend. An empty Addr keeps the
// in-process cache.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads and validates the configuration.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" && !c.IsDevelopment() {
		return ErrMissingJWTSecret
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
