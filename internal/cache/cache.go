package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pulsevo/pkg/metrics"
)

// Cache is a JSON-over-Redis TTL cache for expensive insight payloads. A nil
// Redis client is allowed: every lookup then misses and every store is a
// no-op, so the service degrades to recomputing instead of failing.
type Cache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func New(rdb *redis.Client, logger *zap.Logger) *Cache {
	return &Cache{rdb: rdb, logger: logger}
}

// GetJSON loads key into out, reporting whether a cached value was found.
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.IncrementCacheRequest(key, "miss")
		} else {
			metrics.IncrementCacheRequest(key, "error")
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		metrics.IncrementCacheRequest(key, "error")
		return false
	}
	metrics.IncrementCacheRequest(key, "hit")
	return true
}

// SetJSON stores v under key with the given TTL. Failures are logged, never
// surfaced.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a cached entry.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
