package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/interfaces/api/handlers"
	"task-manager-api/interfaces/api/middleware"
	"task-manager-api/pkg/token"
)

func SetupAuthRoutes(router fiber.Router, h *handlers.Handlers, tokens *token.Manager) {
	auth := router.Group("/auth")

	auth.Post("/register", h.AuthHandler.Register)
	auth.Post("/login", h.AuthHandler.Login)

	auth.Get("/me", middleware.Protected(tokens), h.AuthHandler.Me)
}
