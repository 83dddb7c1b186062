package serviceimpl

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/pkg/scheduler"
)

type fixedPoolStats struct {
	stats sql.DBStats
}

func (f fixedPoolStats) Stats() sql.DBStats { return f.stats }

func TestPoolMonitorRegistersJob(t *testing.T) {
	s := scheduler.NewEventScheduler()
	monitor := NewPoolMonitorService(fixedPoolStats{}, s, "")

	require.NoError(t, monitor.RegisterMonitorJob())
	assert.Equal(t, []string{"db_pool_monitor"}, s.JobIDs())

	assert.Error(t, monitor.RegisterMonitorJob(), "second registration collides")
}

func TestPoolMonitorSample(t *testing.T) {
	want := sql.DBStats{MaxOpenConnections: 20, OpenConnections: 20, InUse: 20}
	monitor := NewPoolMonitorService(fixedPoolStats{stats: want}, scheduler.NewEventScheduler(), "@every 30s")

	got := monitor.Sample(context.Background())
	assert.Equal(t, want, got)
}
