package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/labtrack/internal/api/http"
	"github.com/spec-kit/labtrack/internal/api/http/handlers"
	"github.com/spec-kit/labtrack/internal/auth"
	"github.com/spec-kit/labtrack/internal/config"
	"github.com/spec-kit/labtrack/internal/observability"
	"github.com/spec-kit/labtrack/internal/persistence"
	"github.com/spec-kit/labtrack/internal/repository"
	"github.com/spec-kit/labtrack/internal/repository/memory"
	"github.com/spec-kit/labtrack/internal/service"
	"github.com/spec-kit/labtrack/internal/worker"
)

const (
	notificationQueueSize = 256
	shutdownTimeout       = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.DefaultTokenTTL())
	if tokens.UsesDefaultSecret() {
		logger.Warn("JWT secret not configured, using the development key")
	}

	healthDeps := map[string]handlers.Pinger{}

	var store *repository.Store
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = repository.NewPostgresStore(pg.PoolHandle())
		healthDeps["postgres"] = pg
	default:
		logger.Info("using in-memory record store")
		store = memory.NewStore()
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	if redis.Enabled() {
		healthDeps["redis"] = redis
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(registry)
	}

	notificationService := service.NewNotificationService(logger, redis, metrics, cfg.Notification)
	notifications := worker.StartNotificationWorker(notificationService, logger, notificationQueueSize)

	authService := service.NewAuthService(cfg.Auth, store.Users, tokens, logger)
	userService := service.NewUserService(store.Users, cfg.Auth.BcryptCost, logger)
	sampleService := service.NewSampleService(store.Samples, store.Users, notifications, logger)
	testService := service.NewLabTestService(store.Tests)
	resultService := service.NewResultService(service.ResultDependencies{
		ResultRepo: store.Results,
		SampleRepo: store.Samples,
		TestRepo:   store.Tests,
		Dispatcher: notifications,
	}, logger)
	inventoryService := service.NewInventoryService(store.Inventory, notifications, logger)
	dashboardService := service.NewDashboardService(store)

	created, err := authService.EnsureBootstrapAdmin(ctx, cfg.Auth)
	if err != nil {
		logger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}
	if created {
		logger.Info("bootstrap admin account created", zap.String("email", cfg.Auth.BootstrapAdminEmail))
	}

	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName:      cfg.App.Name,
		Logger:       logger,
		Metrics:      metrics,
		Timeout:      cfg.App.RequestTimeout(),
		AllowOrigins: cfg.CORS.AllowOrigins,
		Routes: httptransport.RouteConfig{
			Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps),
			Auth:           handlers.NewAuthHandler(authService),
			Users:          handlers.NewUsersHandler(userService),
			Samples:        handlers.NewSamplesHandler(sampleService),
			Tests:          handlers.NewTestsHandler(testService),
			Results:        handlers.NewResultsHandler(resultService),
			Inventory:      handlers.NewInventoryHandler(inventoryService),
			Reports:        handlers.NewReportsHandler(dashboardService),
			AuthMiddleware: auth.NewAuthMiddleware(auth.NewResolver(tokens), logger, metrics),
		},
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := notifications.Stop(shutdownCtx); err != nil {
		logger.Warn("notification worker shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
