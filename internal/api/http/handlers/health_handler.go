package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-assistant/internal/persistence"
	"github.com/spec-kit/menu-assistant/internal/service"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	menu        service.MenuProvider
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance. redis may be nil when the
// quota store is stateless.
func NewHealthHandler(serviceName, version string, menu service.MenuProvider, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, menu: menu, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies. An empty menu is
// degraded but not fatal; an unreachable quota store is.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if items := h.menu.Load(); len(items) > 0 {
		depStatus["menu"] = "ok"
	} else {
		depStatus["menu"] = "empty"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			depStatus["redis"] = err.Error()
			ready = false
		} else {
			depStatus["redis"] = "ok"
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error":        "dependency_unavailable",
		"dependencies": depStatus,
	})
}
