package sequence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

var _ Counter = (*RedisCounter)(nil)

// RedisCounter mints sequence values via INCR, which Redis guarantees atomic.
// Useful when several API instances share one counter without PostgreSQL.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisCounter wires a Redis-backed counter. Keys are namespaced with prefix.
func NewRedisCounter(client *redis.Client, prefix string) *RedisCounter {
	if prefix == "" {
		prefix = "sequence"
	}
	return &RedisCounter{client: client, prefix: prefix}
}

func (c *RedisCounter) Next(ctx context.Context, name string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, errors.New("redis sequence counter not configured")
	}
	return c.client.Incr(ctx, c.prefix+":"+name).Result()
}
