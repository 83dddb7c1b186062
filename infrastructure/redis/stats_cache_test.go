package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/domain/models"
	"task-manager-api/pkg/config"
)

func TestStatsKeys(t *testing.T) {
	id := uuid.MustParse("7f1c1a52-6f2e-4c1d-9a57-0c3d2f8b9e10")
	assert.Equal(t, "stats:7f1c1a52-6f2e-4c1d-9a57-0c3d2f8b9e10", StatsKey(id))
	assert.Equal(t, "stats:gen:7f1c1a52-6f2e-4c1d-9a57-0c3d2f8b9e10", GenerationKey(id))
}

func TestStatsCacheRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	client, err := NewClient(&config.RedisConfig{URL: url})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := NewStatsCache(client, time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	got, err := cache.GetStats(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	gen, err := cache.Generation(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	want := &models.TaskStats{Total: 3, Completed: 1, Pending: 2, HighPriority: 1}
	require.NoError(t, cache.SetStats(ctx, userID, want, gen))

	got, err = cache.GetStats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, cache.InvalidateStats(ctx, userID))
	got, err = cache.GetStats(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// a write carrying the pre-invalidation generation is dropped
	require.NoError(t, cache.SetStats(ctx, userID, want, gen))
	got, err = cache.GetStats(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	gen, err = cache.Generation(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	require.NoError(t, cache.SetStats(ctx, userID, want, gen))
	got, err = cache.GetStats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
