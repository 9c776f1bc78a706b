package rest

import (
	"time"

	"github.com/Saran-Akshintala/autocontent-pro-sub000/core/config"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
)

type Health struct {
	startedAt time.Time
}

func InitRestHealth(app fiber.Router) Health {
	handler := Health{startedAt: time.Now()}

	app.Get("/health", handler.GetStatus)

	return handler
}

func (h *Health) GetStatus(c *fiber.Ctx) error {
	version := ""
	if config.Global != nil {
		version = config.Global.App.Version
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"uptime":  humanize.Time(h.startedAt),
	})
}
