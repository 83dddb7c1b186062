package dto

import (
	"task-manager-api/domain/models"
	"task-manager-api/pkg/utils"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = *TaskToTaskResponse(task)
	}
	return out
}

func TaskStatsToResponse(stats *models.TaskStats) TaskStatsResponse {
	if stats == nil {
		return TaskStatsResponse{}
	}
	return TaskStatsResponse{
		Total:        stats.Total,
		Completed:    stats.Completed,
		InProgress:   stats.InProgress,
		Pending:      stats.Pending,
		HighPriority: stats.HighPriority,
	}
}

// TaskRequestToTask applies defaults and parses the due date. The request is
// expected to have passed validation already.
func TaskRequestToTask(req *TaskRequest) (*models.Task, error) {
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
	}

	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}

	return task, nil
}

func TaskFilterRequestToFilter(req *TaskFilterRequest) models.TaskFilter {
	return models.TaskFilter{
		Status:   models.TaskStatus(req.Status),
		Priority: models.TaskPriority(req.Priority),
	}
}
