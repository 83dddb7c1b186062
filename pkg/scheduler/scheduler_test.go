package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemoveJob(t *testing.T) {
	s := NewEventScheduler()

	require.NoError(t, s.AddJob("b", "@every 1h", func() {}))
	require.NoError(t, s.AddJob("a", "@every 1h", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobIDs())

	assert.Error(t, s.AddJob("a", "@every 1h", func() {}), "duplicate id")

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobIDs())
	assert.Error(t, s.RemoveJob("a"))
}

func TestAddJobRejectsBadExpression(t *testing.T) {
	s := NewEventScheduler()
	assert.Error(t, s.AddJob("bad", "not a cron", func() {}))
	assert.Empty(t, s.JobIDs())
}

func TestStartRunsJobsAndSurvivesPanics(t *testing.T) {
	s := NewEventScheduler()

	var calls atomic.Int32
	require.NoError(t, s.AddJob("tick", "@every 1s", func() {
		calls.Add(1)
		panic("boom")
	}))

	s.Start()
	defer s.Stop()
	assert.True(t, s.IsRunning())

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)

	s.Stop()
	assert.False(t, s.IsRunning())
}
