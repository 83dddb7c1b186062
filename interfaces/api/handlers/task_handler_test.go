package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/domain/models"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/token"
	"task-manager-api/pkg/utils"
)

// brokenTaskService fails the read paths the way an unreachable database would.
type brokenTaskService struct {
	services.TaskService
}

func (brokenTaskService) ListTasks(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	return nil, errors.New("connection refused")
}

func (brokenTaskService) GetStats(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error) {
	return nil, errors.New("connection refused")
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestReadFailuresAreLoggedAndHidden(t *testing.T) {
	logs := captureLogs(t)

	svc := brokenTaskService{}
	tasks := NewTaskHandler(svc)
	stats := NewStatsHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		utils.SetUserInContext(c, &token.Identity{UserID: uuid.New(), Username: "alice"})
		return c.Next()
	})
	app.Get("/tasks", tasks.ListTasks)
	app.Get("/stats", stats.GetStats)

	tests := []struct {
		path    string
		wantLog string
	}{
		{"/tasks", "Failed to list tasks"},
		{"/stats", "Failed to load task stats"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.Equal(t, "Internal server error", body["error"])
			assert.NotContains(t, body, "details")

			assert.Contains(t, logs.String(), tt.wantLog)
			assert.Contains(t, logs.String(), "connection refused")
		})
	}
}
