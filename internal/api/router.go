package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/orderdesk/order-gateway/internal/api/handler"
	"github.com/orderdesk/order-gateway/internal/api/middleware"
	"github.com/orderdesk/order-gateway/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Auth            ports.AuthService
	Tokens          ports.TokenService
	Users           ports.UserRepository
	Orders          ports.OrderService
	OrderServiceURL string
	Redis           *redis.Client // nil with the in-process cache
	Logger          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	healthHandler := handler.NewHealthHandler(deps.OrderServiceURL)
	readinessHandler := handler.NewReadinessHandler(deps.Redis)
	authGuard := middleware.Auth(deps.Tokens, deps.Users)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authGuard)

	// --- Order routes (protected) ---
	e.POST("/orders", orderHandler.Create, authGuard)
	e.GET("/orders/:id", orderHandler.Get, authGuard)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
