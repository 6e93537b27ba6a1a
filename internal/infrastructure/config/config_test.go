package config

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL",
		"ORDER_SERVICE_URL", "UPSTREAM_TIMEOUT", "UPSTREAM_MAX_ATTEMPTS",
		"UPSTREAM_RETRY_DELAY", "REDIS_ADDR", "REDIS_DB",
	} {
		// t.Setenv registers the restore; the unset makes the variable
		// truly absent so struct defaults apply.
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "development")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if cfg.Upstream.OrderServiceURL != "http://localhost:8002" {
		t.Fatalf("unexpected upstream url: %s", cfg.Upstream.OrderServiceURL)
	}
	if cfg.Upstream.Timeout != 30*time.Second || cfg.Upstream.MaxAttempts != 3 || cfg.Upstream.RetryDelay != time.Second {
		t.Fatalf("unexpected upstream tuning: %+v", cfg.Upstream)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected redis disabled by default")
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development environment")
	}
}

func TestLoad_MissingSecretOutsideDevelopment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	if _, err := Load(context.Background()); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("ORDER_SERVICE_URL", "http://orders:9000")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.JWTSecret != "super-secret" {
		t.Fatalf("unexpected secret: %s", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Fatalf("unexpected ttl: %v", cfg.TokenTTL)
	}
	if cfg.Upstream.OrderServiceURL != "http://orders:9000" {
		t.Fatalf("unexpected upstream url: %s", cfg.Upstream.OrderServiceURL)
	}
}
