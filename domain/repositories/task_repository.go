package repositories

import (
	"context"

	"github.com/google/uuid"

	"task-manager-api/domain/models"
)

// TaskRepository methods that take both a task id and a user id match on both
// in a single predicate. A task owned by someone else is indistinguishable
// from a missing one: both return ErrNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Task, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, changes *models.Task) (*models.Task, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (*models.Task, error)
	StatsByUser(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error)
}
