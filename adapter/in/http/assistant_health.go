// Package http contains the Fiber handlers the browser extension talks to.
package http

import (
	"github.com/gofiber/fiber/v2"
)

const serviceName = "email-assistant-backend"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/", h.Health)
	r.Get("/health", h.Health)
}

// Health reports liveness. The extension pings this on startup.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": serviceName,
	})
}
