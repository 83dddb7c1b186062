package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/token"
	"task-manager-api/pkg/utils"

	hub "task-manager-api/infrastructure/websocket"
)

type WebSocketHandler struct {
	hub *hub.Hub
}

func NewWebSocketHandler(h *hub.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: h}
}

// WebSocketUpgrade runs after the auth gate and carries the identity into the
// connection's locals.
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	identity, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Access token required")
	}
	c.Locals("identity", identity)
	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	identity, ok := c.Locals("identity").(*token.Identity)
	if !ok || identity == nil {
		c.Close()
		return
	}

	h.hub.Register(c, identity.UserID)
	defer h.hub.Unregister(c)

	logger.Info("WebSocket connected", "user_id", identity.UserID)

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("WebSocket read ended", "user_id", identity.UserID, "error", err)
			break
		}
		h.hub.HandleMessage(c, message)
	}
}
