package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-report-service/internal/persistence"
)

// HealthHandler exposes liveness/readiness probes.
type HealthHandler struct {
	pg    *persistence.Postgres
	redis *persistence.Redis
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready reports dependency reachability.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	if h.pg != nil && h.pg.PoolHandle() != nil {
		if err := h.pg.PoolHandle().Ping(c.Context()); err != nil {
			checks["postgres"] = "unreachable"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "not configured"
	}

	if h.redis != nil && h.redis.Client != nil {
		if err := h.redis.Ping(c.Context()); err != nil {
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not configured"
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"checks": checks})
}
