package nats

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"task-manager-api/domain/ports"
	"task-manager-api/pkg/logger"
)

// Subscriber listens on tasks.events.> and hands each event to the sink.
type Subscriber struct {
	conn      *nats.Conn
	sink      ports.TaskEventSink
	sub       *nats.Subscription
	running   bool
	runningMu sync.Mutex
}

func NewSubscriber(conn *nats.Conn, sink ports.TaskEventSink) *Subscriber {
	return &Subscriber{
		conn: conn,
		sink: sink,
	}
}

func (s *Subscriber) Start() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		return nil
	}

	sub, err := s.conn.Subscribe(SubjectTaskEvents+".>", s.HandleMessage)
	if err != nil {
		return err
	}
	s.sub = sub
	s.running = true

	logger.Info("NATS subscriber started", "subject", SubjectTaskEvents+".>")
	return nil
}

// HandleMessage decodes one event. Messages whose payload owner does not
// match the subject are dropped.
func (s *Subscriber) HandleMessage(msg *nats.Msg) {
	var event ports.TaskEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to parse task event", "subject", msg.Subject, "error", err)
		return
	}
	if event.UserID == uuid.Nil || msg.Subject != TaskEventSubject(event.UserID) {
		logger.Warn("Dropping task event with mismatched owner", "subject", msg.Subject)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Task event sink panicked", "error", r)
		}
	}()
	s.sink.Deliver(&event)
}

func (s *Subscriber) Stop() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", "error", err)
			return err
		}
	}

	logger.Info("NATS subscriber stopped")
	return nil
}

func (s *Subscriber) IsRunning() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}
