package routes

import (
	"github.com/MiMmohammdi/job-offers-api/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	offers *handler.JobOffersHandler
	health *handler.HealthHandler
}

func NewRegistry(offers *handler.JobOffersHandler, health *handler.HealthHandler) *Registry {
	return &Registry{offers: offers, health: health}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.health.HandleHealth)

	api := app.Group("/api")
	api.Get("/job-offers", r.offers.HandleListOffers)
}
