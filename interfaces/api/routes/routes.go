package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/interfaces/api/handlers"
	"task-manager-api/pkg/token"
	"task-manager-api/pkg/utils"

	hub "task-manager-api/infrastructure/websocket"
)

// Deps are the non-handler pieces routes need.
type Deps struct {
	Tokens *token.Manager
	Hub    *hub.Hub
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, deps Deps) {
	SetupHealthRoutes(app, h)
	SetupMetricsRoutes(app)

	SetupAuthRoutes(app, h, deps.Tokens)
	SetupTaskRoutes(app, h, deps.Tokens)
	SetupStatsRoutes(app, h, deps.Tokens)

	if deps.Hub != nil {
		SetupWebSocketRoutes(app, deps.Hub, deps.Tokens)
	}

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "Route not found")
	})
}
