package serviceimpl

import (
	"context"
	"database/sql"

	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/metrics"
	"task-manager-api/pkg/scheduler"
)

// PoolStatsSource is satisfied by *sql.DB.
type PoolStatsSource interface {
	Stats() sql.DBStats
}

// PoolMonitorService samples the connection pool on a schedule.
type PoolMonitorService struct {
	source    PoolStatsSource
	scheduler scheduler.EventScheduler
	cronExpr  string
}

func NewPoolMonitorService(source PoolStatsSource, eventScheduler scheduler.EventScheduler, cronExpr string) *PoolMonitorService {
	if cronExpr == "" {
		cronExpr = "@every 30s"
	}
	return &PoolMonitorService{
		source:    source,
		scheduler: eventScheduler,
		cronExpr:  cronExpr,
	}
}

func (s *PoolMonitorService) RegisterMonitorJob() error {
	return s.scheduler.AddJob("db_pool_monitor", s.cronExpr, func() {
		s.Sample(context.Background())
	})
}

// Sample records one snapshot. Exposed so it can run outside the scheduler.
func (s *PoolMonitorService) Sample(ctx context.Context) sql.DBStats {
	stats := s.source.Stats()
	metrics.RecordPoolStats(stats)

	logger.DebugContext(ctx, "Database pool stats",
		"open", stats.OpenConnections,
		"in_use", stats.InUse,
		"idle", stats.Idle,
		"wait_count", stats.WaitCount,
		"wait_duration", stats.WaitDuration.String(),
	)

	if stats.MaxOpenConnections > 0 && stats.InUse >= stats.MaxOpenConnections {
		logger.WarnContext(ctx, "Database pool exhausted", "max_open", stats.MaxOpenConnections)
	}
	return stats
}
