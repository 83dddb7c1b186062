package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/token"
	"task-manager-api/pkg/utils"
)

const (
	msgTokenRequired = "Access token required"
	msgTokenInvalid  = "Invalid or expired token"
)

// Protected gates a route on a bearer token. No token is 401, a bad or
// expired one is 403.
func Protected(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return gate(c, tokens, extractBearer(c.Get(fiber.HeaderAuthorization)))
	}
}

// ProtectedWebSocket also accepts ?token= since browsers cannot set headers
// on an upgrade request.
func ProtectedWebSocket(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractBearer(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			raw = c.Query("token")
		}
		return gate(c, tokens, raw)
	}
}

func gate(c *fiber.Ctx, tokens *token.Manager, raw string) error {
	result := tokens.Verify(raw)

	switch result.Status {
	case token.Valid:
		utils.SetUserInContext(c, result.Identity)
		ctx := logger.ContextWithUserID(c.UserContext(), result.Identity.UserID.String())
		c.SetUserContext(ctx)
		return c.Next()
	case token.Missing:
		return utils.UnauthorizedResponse(c, msgTokenRequired)
	default:
		logger.DebugContext(c.UserContext(), "Token rejected", "status", result.Status.String())
		return utils.ForbiddenResponse(c, msgTokenInvalid)
	}
}

// extractBearer takes the second whitespace-separated field of the header.
func extractBearer(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
