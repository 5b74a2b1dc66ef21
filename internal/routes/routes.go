package routes

import (
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/config"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	sightingHandler *handlers.SightingHandler,
	moderationHandler *handlers.ModerationHandler,
	imageHandler *handlers.ImageHandler,
	healthHandler *handlers.HealthHandler,
) {
	operator := middleware.OperatorRequired(cfg)

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Public intake and feed
	api.Post("/sightings", sightingHandler.Create)
	api.Get("/sightings", sightingHandler.List)
	api.Get("/image/:key", imageHandler.Get)

	// Moderation (operator credential required)
	admin := api.Group("/admin", operator)
	admin.Get("/pending", moderationHandler.Pending)
	admin.Post("/approve/:id", moderationHandler.Approve)
	admin.Post("/reject/:id", moderationHandler.Reject)

	// Moderation UI, behind the same gate
	if cfg.AdminUIDir != "" {
		app.Use("/admin", operator)
		app.Static("/admin", cfg.AdminUIDir)
	}
}
