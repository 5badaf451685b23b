package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-report-service/internal/api/http/handlers"
	"github.com/spec-kit/incident-report-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Webhook         *handlers.WebhookHandler
	Reports         *handlers.ReportsHandler
	Pages           *handlers.PagesHandler
	AdminMiddleware *auth.AdminMiddleware
	PublicDir       string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/webhook", cfg.Webhook.Verify)
	app.Post("/webhook", cfg.Webhook.Receive)

	api := app.Group("/api")
	api.Get("/reports", cfg.Reports.List)
	api.Put("/reports/:id", cfg.Reports.UpdateStatus)
	api.Get("/stats", cfg.Reports.Stats)
	api.Delete("/reports/:id", cfg.AdminMiddleware.Handle, cfg.Reports.Delete)

	app.Get("/privacy", cfg.Pages.Privacy)
	app.Get("/terms", cfg.Pages.Terms)
	app.Get("/admin", cfg.Pages.Admin)

	app.Static("/", cfg.PublicDir)
}
