package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-manager-api/domain/models"
	"task-manager-api/domain/repositories"
)

// ownedBy is the single predicate used for every id-addressed task query.
const ownedBy = "id = ? AND user_id = ?"

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *TaskRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", string(filter.Priority))
	}

	tasks := make([]*models.Task, 0)
	err := q.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where(ownedBy, id, userID).First(&task).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &task, nil
}

// UpdateOwned is one UPDATE ... WHERE id AND user_id ... RETURNING *.
func (r *TaskRepositoryImpl) UpdateOwned(ctx context.Context, id, userID uuid.UUID, changes *models.Task) (*models.Task, error) {
	var task models.Task
	res := r.db.WithContext(ctx).
		Model(&task).
		Clauses(clause.Returning{}).
		Where(ownedBy, id, userID).
		Updates(map[string]interface{}{
			"title":       changes.Title,
			"description": changes.Description,
			"priority":    string(changes.Priority),
			"status":      string(changes.Status),
			"due_date":    changes.DueDate,
			"updated_at":  changes.UpdatedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return &task, nil
}

// DeleteOwned is one DELETE ... WHERE id AND user_id ... RETURNING *.
func (r *TaskRepositoryImpl) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (*models.Task, error) {
	var task models.Task
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where(ownedBy, id, userID).
		Delete(&task)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) StatsByUser(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error) {
	var stats models.TaskStats
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE priority = 'high') AS high_priority`).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
