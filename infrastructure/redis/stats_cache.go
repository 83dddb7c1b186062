package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"task-manager-api/domain/models"
	"task-manager-api/domain/ports"
)

const (
	statsKeyPrefix     = "stats:"
	statsGenerationKey = "stats:gen:"
	DefaultStatsTTL    = 60 * time.Second
)

// StatsCache keeps one JSON document per user under stats:<userID> and an
// invalidation counter under stats:gen:<userID>.
type StatsCache struct {
	client *Client
	ttl    time.Duration
}

func NewStatsCache(client *Client, ttl time.Duration) ports.StatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

func StatsKey(userID uuid.UUID) string {
	return statsKeyPrefix + userID.String()
}

func GenerationKey(userID uuid.UUID) string {
	return statsGenerationKey + userID.String()
}

func (s *StatsCache) GetStats(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error) {
	var stats models.TaskStats
	err := s.client.GetJSON(ctx, StatsKey(userID), &stats)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *StatsCache) Generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	gen, err := s.client.rdb.Get(ctx, GenerationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetStats writes under WATCH on the generation key. A bump between the
// caller's Generation read and this write skips the write.
func (s *StatsCache) SetStats(ctx context.Context, userID uuid.UUID, stats *models.TaskStats, generation int64) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	genKey := GenerationKey(userID)
	err = s.client.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, StatsKey(userID), data, s.ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// InvalidateStats bumps the generation and drops the entry in one transaction.
func (s *StatsCache) InvalidateStats(ctx context.Context, userID uuid.UUID) error {
	_, err := s.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(userID))
		pipe.Del(ctx, StatsKey(userID))
		return nil
	})
	return err
}
