package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"hackhub/internal/models"
)

// Version is reported by the info endpoint.
const Version = "1.0.0"

// Pinger is a dependency whose availability is reported by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the health and info endpoints.
type HealthHandler struct {
	application string
	description string
	port        string
	checks      map[string]Pinger
}

// NewHealthHandler creates a health handler. checks maps a dependency name
// to its pinger; the service is reported DOWN when any of them fails.
func NewHealthHandler(application, description, port string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		application: application,
		description: description,
		port:        port,
		checks:      checks,
	}
}

// Health reports whether the service and its dependencies are up.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	resp := models.HealthResponse{
		Status:      "UP",
		Application: h.application,
		Port:        h.port,
	}

	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()

		resp.Checks = make(map[string]string, len(h.checks))
		for name, p := range h.checks {
			if err := p.Ping(ctx); err != nil {
				slog.Warn("health check failed", "check", name, "error", err)
				resp.Checks[name] = "DOWN"
				resp.Status = "DOWN"
				continue
			}
			resp.Checks[name] = "UP"
		}
	}

	if resp.Status != "UP" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return jsonOK(c, resp)
}

// Info describes the running application.
func (h *HealthHandler) Info(c fiber.Ctx) error {
	return jsonOK(c, models.InfoResponse{
		Application: h.application,
		Version:     Version,
		Description: h.description,
		Port:        h.port,
	})
}
