package handler

import (
	"context"

	"github.com/MiMmohammdi/job-offers-api/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	status := map[string]string{"service": "up", "database": "up"}
	if h.db == nil {
		status["database"] = "unknown"
	} else if err := h.db.Ping(c.Context()); err != nil {
		status["database"] = "down"
		return response.Error(c, fiber.StatusServiceUnavailable, "degraded", status)
	}
	return response.Success(c, fiber.StatusOK, "ok", status)
}
