package app

import (
	"fmt"
	"strings"

	"github.com/MiMmohammdi/job-offers-api/internal/config"
	"github.com/MiMmohammdi/job-offers-api/internal/delivery/http/handler"
	"github.com/MiMmohammdi/job-offers-api/internal/delivery/http/middleware"
	"github.com/MiMmohammdi/job-offers-api/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container and the HTTP surface around it. The
// returned cleanup closes the pool; the caller decides when.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        c.Config.RateLimit.MaxRequest,
		Expiration: c.Config.RateLimit.TTL,
	}))
}

func registerRoutes(app *fiber.App, c *Container) {
	offers := handler.NewJobOffersHandler(c.OfferList)
	health := handler.NewHealthHandler(c.DB)
	routes.NewRegistry(offers, health).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
