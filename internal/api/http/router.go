package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/labtrack/internal/api/http/handlers"
	"github.com/spec-kit/labtrack/internal/auth"
	"github.com/spec-kit/labtrack/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Samples        *handlers.SamplesHandler
	Tests          *handlers.TestsHandler
	Results        *handlers.ResultsHandler
	Inventory      *handlers.InventoryHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Every route outside the public set
// authenticates first and then consults the authorization table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	mw := cfg.AuthMiddleware
	can := mw.Require

	app.Post("/auth/login", cfg.Auth.Login)
	app.Get("/auth/me", mw.Handle, cfg.Auth.Me)

	users := app.Group("/users", mw.Handle)
	users.Get("/", can(auth.OpListUsers), cfg.Users.List)
	users.Post("/", can(auth.OpCreateUser), cfg.Users.Create)
	users.Get("/:id", can(auth.OpGetUser), cfg.Users.Get)
	users.Put("/:id", can(auth.OpUpdateUser), cfg.Users.Update)

	samples := app.Group("/samples", mw.Handle)
	samples.Get("/", can(auth.OpListSamples), cfg.Samples.List)
	samples.Post("/", can(auth.OpCreateSample), cfg.Samples.Create)
	samples.Get("/:id", can(auth.OpGetSample), cfg.Samples.Get)
	samples.Put("/:id", can(auth.OpUpdateSample), cfg.Samples.Update)

	tests := app.Group("/tests", mw.Handle)
	tests.Get("/", can(auth.OpListTests), cfg.Tests.List)
	tests.Post("/", can(auth.OpCreateTest), cfg.Tests.Create)
	tests.Get("/:id", can(auth.OpGetTest), cfg.Tests.Get)
	tests.Put("/:id", can(auth.OpUpdateTest), cfg.Tests.Update)

	results := app.Group("/results", mw.Handle)
	results.Get("/", can(auth.OpListResults), cfg.Results.List)
	results.Post("/", can(auth.OpRecordResult), cfg.Results.Create)
	results.Put("/:id", can(auth.OpUpdateResult), cfg.Results.Update)

	inventory := app.Group("/inventory", mw.Handle)
	inventory.Get("/", can(auth.OpListInventory), cfg.Inventory.List)
	inventory.Post("/", can(auth.OpCreateInventoryItem), cfg.Inventory.Create)
	inventory.Get("/:id", can(auth.OpGetInventoryItem), cfg.Inventory.Get)
	inventory.Put("/:id", can(auth.OpAdjustInventory), cfg.Inventory.Adjust)
	inventory.Get("/:id/transactions", can(auth.OpGetInventoryItem), cfg.Inventory.Transactions)

	app.Get("/dashboard/stats", mw.Handle, can(auth.OpViewDashboard), cfg.Reports.Stats)
	app.Get("/reports/samples", mw.Handle, can(auth.OpViewReports), cfg.Reports.Samples)
}
