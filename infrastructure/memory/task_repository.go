package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"task-manager-api/domain/models"
	"task-manager-api/domain/repositories"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]models.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[uuid.UUID]models.Task)}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	stored := *task
	stored.User = nil
	r.tasks[task.ID] = stored
	return nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*models.Task, 0)
	for _, task := range r.tasks {
		t := task
		if t.UserID == userID && filter.Matches(&t) {
			tasks = append(tasks, &t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// owned must be called with the lock held.
func (r *TaskRepository) owned(id, userID uuid.UUID) (models.Task, bool) {
	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return models.Task{}, false
	}
	return task, true
}

func (r *TaskRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.owned(id, userID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &task, nil
}

func (r *TaskRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, changes *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.owned(id, userID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	task.Title = changes.Title
	task.Description = changes.Description
	task.Priority = changes.Priority
	task.Status = changes.Status
	task.DueDate = changes.DueDate
	task.UpdatedAt = changes.UpdatedAt
	r.tasks[id] = task
	return &task, nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.owned(id, userID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.tasks, id)
	return &task, nil
}

func (r *TaskRepository) StatsByUser(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.TaskStats{}
	for _, task := range r.tasks {
		if task.UserID != userID {
			continue
		}
		stats.Total++
		switch task.Status {
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusPending:
			stats.Pending++
		}
		if task.Priority == models.PriorityHigh {
			stats.HighPriority++
		}
	}
	return stats, nil
}

var _ repositories.TaskRepository = (*TaskRepository)(nil)
