package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/interfaces/api/handlers"
	"task-manager-api/interfaces/api/middleware"
	"task-manager-api/pkg/token"
)

func SetupTaskRoutes(router fiber.Router, h *handlers.Handlers, tokens *token.Manager) {
	tasks := router.Group("/tasks", middleware.Protected(tokens))
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}

func SetupStatsRoutes(router fiber.Router, h *handlers.Handlers, tokens *token.Manager) {
	router.Get("/stats", middleware.Protected(tokens), h.StatsHandler.GetStats)
}
