package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/soltixdb/soltix-resample/internal/config"
	"github.com/soltixdb/soltix-resample/internal/handlers"
	"github.com/soltixdb/soltix-resample/internal/logging"
	"github.com/soltixdb/soltix-resample/internal/middleware"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, cfg.Resample)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + logging.RequestIDHeader,
	}))
	app.Use(logging.FiberMiddleware(logger, "/health"))

	// Health check
	app.Get("/health", h.Health)

	// API v1 routes
	v1 := app.Group("/v1")
	v1.Post("/resample", h.Resample)
	v1.Post("/resample/batch", h.ResampleBatch)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Soltix Resampler",
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, cfg)

	return app
}
