package rest

import (
	"github.com/Saran-Akshintala/autocontent-pro-sub000/core/config"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/cmdworker"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
)

type MonitoringHandler struct {
	pool    *cmdworker.CommandWorkerPool
	limiter *ratelimit.Limiter
}

// InitRestMonitoring exposes runtime stats for the command workers and the
// outbound pacing limiter.
func InitRestMonitoring(app fiber.Router, pool *cmdworker.CommandWorkerPool, limiter *ratelimit.Limiter) {
	h := &MonitoringHandler{pool: pool, limiter: limiter}

	g := app.Group("/monitoring")
	g.Get("/workers", h.GetWorkerStats)
	g.Get("/limiter", h.GetLimiterStats)
	g.Get("/settings", h.GetSettings)
}

func (h *MonitoringHandler) GetWorkerStats(c *fiber.Ctx) error {
	return c.JSON(h.pool.GetStats())
}

func (h *MonitoringHandler) GetLimiterStats(c *fiber.Ctx) error {
	return c.JSON(h.limiter.GetStats())
}

func (h *MonitoringHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(config.GetAllSettings())
}
