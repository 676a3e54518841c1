package stats

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Store is the key-value cache the overlay reads through. The cache is a
// derived accelerator: it can be dropped and rebuilt at any time.
type Store interface {
	Get(ctx context.Context, userID string) (*UserStats, bool, error)
	Set(ctx context.Context, userID string, stats *UserStats) error
}

// RedisCache stores user stats snapshots in Redis with a fixed TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(userID string) string {
	return "user:stats:" + userID
}

func (c *RedisCache) Get(ctx context.Context, userID string) (*UserStats, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var stats UserStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		// treat a corrupt entry as a miss, the next refresh overwrites it
		return nil, false, nil
	}
	return &stats, true, nil
}

func (c *RedisCache) Set(ctx context.Context, userID string, stats *UserStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(userID), raw, c.ttl).Err()
}
