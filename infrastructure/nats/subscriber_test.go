package nats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/ports"
)

type collectingSink struct {
	events []*ports.TaskEvent
}

func (s *collectingSink) Deliver(event *ports.TaskEvent) {
	s.events = append(s.events, event)
}

type panickingSink struct{}

func (panickingSink) Deliver(*ports.TaskEvent) { panic("sink exploded") }

func encode(t *testing.T, event ports.TaskEvent) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestTaskEventSubject(t *testing.T) {
	userID := uuid.MustParse("6f1c1d4e-8f55-4b0e-9a57-7c7f3f1d2b10")
	assert.Equal(t, "tasks.events.6f1c1d4e-8f55-4b0e-9a57-7c7f3f1d2b10", TaskEventSubject(userID))
}

func TestHandleMessageForwardsMatchingEvents(t *testing.T) {
	sink := &collectingSink{}
	sub := NewSubscriber(nil, sink)
	userID := uuid.New()

	event := ports.TaskEvent{
		Type:       ports.TaskCreated,
		UserID:     userID,
		Task:       dto.TaskResponse{ID: uuid.New(), Title: "Buy milk", UserID: userID},
		OccurredAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	sub.HandleMessage(&nats.Msg{Subject: TaskEventSubject(userID), Data: encode(t, event)})

	require.Len(t, sink.events, 1)
	got := sink.events[0]
	assert.Equal(t, ports.TaskCreated, got.Type)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "Buy milk", got.Task.Title)
	assert.True(t, event.OccurredAt.Equal(got.OccurredAt))
}

func TestHandleMessageDropsBadInput(t *testing.T) {
	sink := &collectingSink{}
	sub := NewSubscriber(nil, sink)
	owner, other := uuid.New(), uuid.New()

	tests := []struct {
		name string
		msg  *nats.Msg
	}{
		{"malformed json", &nats.Msg{Subject: TaskEventSubject(owner), Data: []byte("{")}},
		{"subject for another user", &nats.Msg{
			Subject: TaskEventSubject(other),
			Data:    encode(t, ports.TaskEvent{Type: ports.TaskCreated, UserID: owner}),
		}},
		{"no owner", &nats.Msg{
			Subject: SubjectTaskEvents + ".",
			Data:    encode(t, ports.TaskEvent{Type: ports.TaskCreated}),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub.HandleMessage(tt.msg)
			assert.Empty(t, sink.events)
		})
	}
}

func TestHandleMessageRecoversFromSinkPanic(t *testing.T) {
	sub := NewSubscriber(nil, panickingSink{})
	userID := uuid.New()

	assert.NotPanics(t, func() {
		sub.HandleMessage(&nats.Msg{
			Subject: TaskEventSubject(userID),
			Data:    encode(t, ports.TaskEvent{Type: ports.TaskDeleted, UserID: userID}),
		})
	})
}
