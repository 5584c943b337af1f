package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdash/apigateway/internal/domain"
)

// RedisStatsCache caches the per-owner statistics summary. Callers treat it
// as best-effort: errors and misses both fall through to the store.
type RedisStatsCache struct {
	rdb *redis.Client
}

func NewRedisStatsCache(rdb *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{rdb: rdb}
}

func statsKey(owner string) string {
	return "stats:" + owner
}

func (c *RedisStatsCache) Get(ctx context.Context, owner string) (*domain.TaskStats, error) {
	val, err := c.rdb.Get(ctx, statsKey(owner)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var stats domain.TaskStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, owner string, stats *domain.TaskStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey(owner), data, ttl).Err()
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, owner string) error {
	return c.rdb.Del(ctx, statsKey(owner)).Err()
}
