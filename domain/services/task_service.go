package services

import (
	"context"

	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
)

// TaskService operations are always scoped to the calling user.
type TaskService interface {
	ListTasks(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.TaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.TaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error)
}
