package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisResultCache keeps model output in Redis
type RedisResultCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisResultCache creates a new RedisResultCache instance
func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisResultCache{redis: client, ttl: ttl}
}

func resultKey(analyzer, fingerprint string) string {
	return fmt.Sprintf("analysis:result:%s:%s", analyzer, fingerprint)
}

// Get returns the cached text and whether it was present
func (c *RedisResultCache) Get(ctx context.Context, analyzer, fingerprint string) (string, bool, error) {
	text, err := c.redis.Get(ctx, resultKey(analyzer, fingerprint)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get result from Redis: %w", err)
	}
	return text, true, nil
}

// Set stores text with the configured TTL
func (c *RedisResultCache) Set(ctx context.Context, analyzer, fingerprint, text string) error {
	if err := c.redis.Set(ctx, resultKey(analyzer, fingerprint), text, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save result to Redis: %w", err)
	}
	return nil
}
