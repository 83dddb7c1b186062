package ports

import (
	"context"

	"github.com/google/uuid"

	"task-manager-api/domain/models"
)

// StatsCache holds per-user task stats. A miss returns (nil, nil).
//
// Every invalidation bumps the user's generation. A reader takes the
// generation before computing stats and passes it to SetStats, which stores
// nothing if an invalidation happened in between.
type StatsCache interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error)
	Generation(ctx context.Context, userID uuid.UUID) (int64, error)
	SetStats(ctx context.Context, userID uuid.UUID, stats *models.TaskStats, generation int64) error
	InvalidateStats(ctx context.Context, userID uuid.UUID) error
}
