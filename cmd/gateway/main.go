package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orderdesk/order-gateway/internal/api"
	"github.com/orderdesk/order-gateway/internal/core/ports"
	"github.com/orderdesk/order-gateway/internal/core/service"
	"github.com/orderdesk/order-gateway/internal/infrastructure/cache"
	"github.com/orderdesk/order-gateway/internal/infrastructure/config"
	"github.com/orderdesk/order-gateway/internal/infrastructure/memstore"
	"github.com/orderdesk/order-gateway/internal/infrastructure/upstream"
	"github.com/orderdesk/order-gateway/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; this is the one place stderr is used raw.
		os.Stderr.WriteString("startup: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	secret := cfg.JWTSecret
	if secret == "" {
		// Load already rejected this outside development.
		secret = config.DevFallbackJWTSecret
		log.Warn().Msg("JWT_SECRET not set, using insecure development fallback")
	}

	// --- Cache backend ---
	var (
		orderCache ports.OrderCache
		rdb        *redis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = cache.ConnectRedis(ctx, cache.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		defer rdb.Close()
		orderCache = cache.NewRedis(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis order cache")
	} else {
		orderCache = cache.NewMemory()
		log.Info().Msg("using in-process order cache")
	}

	// --- Core services ---
	users := memstore.NewUserRepository(memstore.DefaultSeed())
	tokens := service.NewTokenService(secret)
	auth := service.NewAuthService(users, tokens, cfg.TokenTTL, log)
	proxy := upstream.NewClient(cfg.Upstream.OrderServiceURL, upstream.Options{
		Timeout:     cfg.Upstream.Timeout,
		MaxAttempts: cfg.Upstream.MaxAttempts,
		BaseDelay:   cfg.Upstream.RetryDelay,
	}, log)
	orders := service.NewOrderService(proxy, orderCache, log)

	e := api.NewRouter(api.Dependencies{
		Auth:            auth,
		Tokens:          tokens,
		Users:           users,
		Orders:          orders,
		OrderServiceURL: cfg.Upstream.OrderServiceURL,
		Redis:           rdb,
		Logger:          log,
	})

	// --- Serve until signalled ---
	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.OrderServiceURL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("gateway stopped")
}
