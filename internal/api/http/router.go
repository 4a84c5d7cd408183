package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-assistant/internal/api/http/handlers"
	"github.com/spec-kit/menu-assistant/internal/auth"
	"github.com/spec-kit/menu-assistant/internal/config"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Chat   *handlers.ChatHandler
	Quota  *auth.QuotaMiddleware
	Static config.StaticConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/token", cfg.Auth.Token)
	authGroup.Post("/verify", cfg.Auth.Verify)

	// body validation precedes quota consumption: a 400 must not burn a message
	app.Post("/menu-assistant", cfg.Chat.ValidateBody, cfg.Quota.Handle, cfg.Chat.Completion)
	// legacy route kept for older clients
	app.Post("/deepseek", cfg.Chat.ValidateBody, cfg.Quota.Handle, cfg.Chat.Completion)

	if !cfg.Static.Disabled {
		app.Static("/", cfg.Static.Dir)
	}
}
