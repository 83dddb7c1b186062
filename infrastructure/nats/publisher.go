package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"task-manager-api/domain/ports"
	"task-manager-api/pkg/metrics"
)

// TaskEventPublisher sends task events to tasks.events.<userID>.
type TaskEventPublisher struct {
	conn *nats.Conn
}

func NewTaskEventPublisher(conn *nats.Conn) ports.TaskEventPublisher {
	return &TaskEventPublisher{conn: conn}
}

func (p *TaskEventPublisher) Publish(ctx context.Context, event *ports.TaskEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	data, err := json.Marshal(event)
	if err != nil {
		metrics.TaskEventsPublished.WithLabelValues(string(event.Type), "error").Inc()
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	if err := p.conn.Publish(TaskEventSubject(event.UserID), data); err != nil {
		metrics.TaskEventsPublished.WithLabelValues(string(event.Type), "error").Inc()
		return fmt.Errorf("failed to publish task event: %w", err)
	}

	metrics.TaskEventsPublished.WithLabelValues(string(event.Type), "ok").Inc()
	return nil
}
