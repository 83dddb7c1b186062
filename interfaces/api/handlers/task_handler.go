package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/utils"
)

const msgTaskNotFound = "Task not found"

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Access token required")
	}

	var filterReq dto.TaskFilterRequest
	if err := c.QueryParser(&filterReq); err != nil {
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}
	if err := utils.ValidateStruct(&filterReq); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	tasks, err := h.taskService.ListTasks(ctx, user.UserID, dto.TaskFilterRequestToFilter(&filterReq))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.TaskListResponse{
		Tasks: dto.TasksToTaskResponses(tasks),
		Total: len(tasks),
	})
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Access token required")
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return utils.NotFoundResponse(c, msgTaskNotFound)
	}

	task, err := h.taskService.GetTask(ctx, user.UserID, taskID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskEnvelope{Task: *dto.TaskToTaskResponse(task)})
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Access token required")
	}

	req, ok, err := parseTaskRequest(c)
	if !ok {
		return err
	}

	task, err := h.taskService.CreateTask(ctx, user.UserID, req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskEnvelope{
		Message: "Task created successfully",
		Task:    *dto.TaskToTaskResponse(task),
	})
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Access token required")
	}

	req, ok, err := parseTaskRequest(c)
	if !ok {
		return err
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return utils.NotFoundResponse(c, msgTaskNotFound)
	}

	task, err := h.taskService.UpdateTask(ctx, user.UserID, taskID, req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskEnvelope{
		Message: "Task updated successfully",
		Task:    *dto.TaskToTaskResponse(task),
	})
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Access token required")
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return utils.NotFoundResponse(c, msgTaskNotFound)
	}

	task, err := h.taskService.DeleteTask(ctx, user.UserID, taskID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskEnvelope{
		Message: "Task deleted successfully",
		Task:    *dto.TaskToTaskResponse(task),
	})
}

func (h *TaskHandler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		return utils.NotFoundResponse(c, msgTaskNotFound)
	case errors.Is(err, services.ErrInvalidTask):
		return utils.BadRequestResponse(c, "Invalid task data")
	default:
		logger.ErrorContext(c.UserContext(), "Task operation failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}
}

// parseTaskID reports a malformed id the same way as a missing task.
func parseTaskID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseTaskRequest writes the 400 itself when ok is false; the caller
// returns err as is.
func parseTaskRequest(c *fiber.Ctx) (req *dto.TaskRequest, ok bool, err error) {
	var body dto.TaskRequest
	if err := c.BodyParser(&body); err != nil {
		logger.WarnContext(c.UserContext(), "Invalid request body", "error", err)
		return nil, false, utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&body); err != nil {
		errs := utils.GetValidationErrors(err)
		logger.WarnContext(c.UserContext(), "Validation failed", "errors", errs)
		return nil, false, utils.ValidationErrorResponse(c, errs)
	}
	return &body, true, nil
}
