package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-manager-api/domain/dto"
)

type TaskEventType string

const (
	TaskCreated TaskEventType = "task.created"
	TaskUpdated TaskEventType = "task.updated"
	TaskDeleted TaskEventType = "task.deleted"
)

// TaskEvent is a plain struct so adapters do not leak transport types.
type TaskEvent struct {
	Type       TaskEventType    `json:"type"`
	UserID     uuid.UUID        `json:"user_id"`
	Task       dto.TaskResponse `json:"task"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// TaskEventPublisher fans task mutations out to whoever listens for the owner.
type TaskEventPublisher interface {
	Publish(ctx context.Context, event *TaskEvent) error
}

// TaskEventSink receives events coming back from the transport.
type TaskEventSink interface {
	Deliver(event *TaskEvent)
}
