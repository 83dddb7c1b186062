package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

type Task struct {
	ID          uuid.UUID    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string       `gorm:"type:varchar(255);not null"`
	Description *string      `gorm:"type:varchar(1000)"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium';check:chk_tasks_priority,priority IN ('low','medium','high')"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'pending';check:chk_tasks_status,status IN ('pending','in_progress','completed')"`
	DueDate     *time.Time   `gorm:"type:timestamptz"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_tasks_user_created,priority:1"`
	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `gorm:"not null;index:idx_tasks_user_created,priority:2,sort:desc"`
	UpdatedAt   time.Time    `gorm:"not null"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskStats is the per-user aggregate served by the stats endpoint.
type TaskStats struct {
	Total        int64 `gorm:"column:total"`
	Completed    int64 `gorm:"column:completed"`
	InProgress   int64 `gorm:"column:in_progress"`
	Pending      int64 `gorm:"column:pending"`
	HighPriority int64 `gorm:"column:high_priority"`
}

// TaskFilter narrows a user's task list. Zero values mean "any".
type TaskFilter struct {
	Status   TaskStatus
	Priority TaskPriority
}

// Matches applies the filter in memory.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return true
}
