package handlers

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/utils"
)

type StatsHandler struct {
	taskService services.TaskService
}

func NewStatsHandler(taskService services.TaskService) *StatsHandler {
	return &StatsHandler{taskService: taskService}
}

func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Access token required")
	}

	ctx := c.UserContext()

	stats, err := h.taskService.GetStats(ctx, user.UserID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load task stats", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.StatsResponse{Stats: dto.TaskStatsToResponse(stats)})
}
