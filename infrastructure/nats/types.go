package nats

import "github.com/google/uuid"

const (
	// SubjectTaskEvents is the prefix for per-owner task events:
	// tasks.events.<userID>
	SubjectTaskEvents = "tasks.events"
)

func TaskEventSubject(userID uuid.UUID) string {
	return SubjectTaskEvents + "." + userID.String()
}
