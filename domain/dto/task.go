package dto

import (
	"time"

	"github.com/google/uuid"
)

// TaskRequest is the body for both create and update. Absent priority and
// status fall back to medium and pending.
type TaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string  `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	DueDate     *string `json:"due_date" validate:"omitempty,isodate"`
}

type TaskFilterRequest struct {
	Status   string `query:"status" json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority string `query:"priority" json:"priority" validate:"omitempty,oneof=low medium high"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	UserID      uuid.UUID  `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

type TaskEnvelope struct {
	Message string       `json:"message,omitempty"`
	Task    TaskResponse `json:"task"`
}

type TaskStatsResponse struct {
	Total        int64 `json:"total"`
	Completed    int64 `json:"completed"`
	InProgress   int64 `json:"in_progress"`
	Pending      int64 `json:"pending"`
	HighPriority int64 `json:"high_priority"`
}

type StatsResponse struct {
	Stats TaskStatsResponse `json:"stats"`
}
