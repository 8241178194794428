package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/observability"
)

// ServerConfig describes the fiber application.
type ServerConfig struct {
	AppName      string
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Timeout      time.Duration
	AllowOrigins string
	Routes       RouteConfig
}

// NewServer builds a fiber app with global middleware and every route registered.
func NewServer(cfg ServerConfig) *fiber.App {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: ErrorHandler(cfg.Logger, cfg.Metrics),
	})
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:       cfg.Logger,
		Metrics:      cfg.Metrics,
		Timeout:      cfg.Timeout,
		AllowOrigins: cfg.AllowOrigins,
	})
	cfg.Routes.Metrics = cfg.Metrics
	RegisterRoutes(app, cfg.Routes)
	return app
}
