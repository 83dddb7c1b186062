package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"task-manager-api/domain/dto"
	"task-manager-api/pkg/utils"
)

// HealthHandler reports liveness only; it does not touch the database.
type HealthHandler struct {
	service string
}

func NewHealthHandler(service string) *HealthHandler {
	if service == "" {
		service = "Task Manager API"
	}
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, dto.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
		Service:   h.service,
	})
}
