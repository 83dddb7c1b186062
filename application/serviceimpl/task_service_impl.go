package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
	"task-manager-api/domain/ports"
	"task-manager-api/domain/repositories"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	events   ports.TaskEventPublisher
	cache    ports.StatsCache // nil = no caching
}

func NewTaskService(taskRepo repositories.TaskRepository, events ports.TaskEventPublisher) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		events:   events,
	}
}

// NewTaskServiceWithCache serves stats through cache and invalidates the
// caller's entry on every mutation.
func NewTaskServiceWithCache(taskRepo repositories.TaskRepository, events ports.TaskEventPublisher, cache ports.StatsCache) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		events:   events,
		cache:    cache,
	}
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetOwned(ctx, taskID, userID)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return task, nil
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.TaskRequest) (*models.Task, error) {
	task, err := dto.TaskRequestToTask(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidTask, err)
	}

	now := time.Now().UTC()
	task.ID = uuid.New()
	task.UserID = userID
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID)
	s.afterMutation(ctx, ports.TaskCreated, task)
	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.TaskRequest) (*models.Task, error) {
	changes, err := dto.TaskRequestToTask(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidTask, err)
	}
	changes.UpdatedAt = time.Now().UTC()

	task, err := s.taskRepo.UpdateOwned(ctx, taskID, userID, changes)
	if err != nil {
		return nil, s.mapNotFound(err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", task.ID)
	s.afterMutation(ctx, ports.TaskUpdated, task)
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.DeleteOwned(ctx, taskID, userID)
	if err != nil {
		return nil, s.mapNotFound(err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", task.ID)
	s.afterMutation(ctx, ports.TaskDeleted, task)
	return task, nil
}

func (s *TaskServiceImpl) GetStats(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error) {
	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		cached, err := s.cache.GetStats(ctx, userID)
		if err != nil {
			logger.WarnContext(ctx, "Stats cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}

		// taken before the query so a concurrent mutation voids the write
		generation, err = s.cache.Generation(ctx, userID)
		if err != nil {
			logger.WarnContext(ctx, "Stats cache generation read failed", "error", err)
		} else {
			cacheable = true
		}
	}

	stats, err := s.taskRepo.StatsByUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to aggregate task stats", "error", err)
		return nil, err
	}

	if cacheable {
		if err := s.cache.SetStats(ctx, userID, stats, generation); err != nil {
			logger.WarnContext(ctx, "Stats cache write failed", "error", err)
		}
	}
	return stats, nil
}

func (s *TaskServiceImpl) mapNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return services.ErrTaskNotFound
	}
	return err
}

// afterMutation drops cached stats and publishes the event. Neither step can
// fail the request.
func (s *TaskServiceImpl) afterMutation(ctx context.Context, eventType ports.TaskEventType, task *models.Task) {
	if s.cache != nil {
		if err := s.cache.InvalidateStats(ctx, task.UserID); err != nil {
			logger.WarnContext(ctx, "Stats cache invalidation failed", "error", err)
		}
	}

	if s.events == nil {
		return
	}
	event := &ports.TaskEvent{
		Type:       eventType,
		UserID:     task.UserID,
		Task:       *dto.TaskToTaskResponse(task),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task event", "type", eventType, "task_id", task.ID, "error", err)
	}
}
