package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"pulsevo/pkg/config"
)

// NewClient connects to Redis and verifies the connection. Callers that can
// run without a cache should treat an error here as degraded, not fatal.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
