package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	hub "task-manager-api/infrastructure/websocket"
	"task-manager-api/interfaces/api/middleware"
	wsHandler "task-manager-api/interfaces/api/websocket"
	"task-manager-api/pkg/token"
)

func SetupWebSocketRoutes(app *fiber.App, h *hub.Hub, tokens *token.Manager) {
	handler := wsHandler.NewWebSocketHandler(h)

	app.Get("/ws/tasks",
		middleware.ProtectedWebSocket(tokens),
		handler.WebSocketUpgrade,
		websocket.New(handler.HandleWebSocket),
	)
}
