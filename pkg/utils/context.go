package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"task-manager-api/pkg/token"
)

const userLocalsKey = "user"

var ErrNoUserInContext = errors.New("user not found in context")

func SetUserInContext(c *fiber.Ctx, identity *token.Identity) {
	c.Locals(userLocalsKey, identity)
}

// GetUserFromContext returns the identity stored by the auth gate.
func GetUserFromContext(c *fiber.Ctx) (*token.Identity, error) {
	identity, ok := c.Locals(userLocalsKey).(*token.Identity)
	if !ok || identity == nil {
		return nil, ErrNoUserInContext
	}
	return identity, nil
}
