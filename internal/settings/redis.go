package settings

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/miqat-app/miqat/internal/redis"
)

// redisKV adapts the shared redis client to the KV interface. Settings
// never expire.
type redisKV struct{}

var _ KV = redisKV{}

// NewRedisKV returns a KV backed by the process-wide redis client.
func NewRedisKV() KV {
	return redisKV{}
}

func (redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := redis.Get(ctx, key)
	if err == goredis.Nil {
		return "", nil
	}
	return val, err
}

func (redisKV) Set(ctx context.Context, key string, value string) error {
	return redis.Set(ctx, key, value, 0)
}
