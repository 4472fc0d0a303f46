package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write key to redis")
		return err
	}
	return nil
}

// Get returns the value for key, or ("", redis.Nil) when it is unset.
func Get(ctx context.Context, key string) (string, error) {
	val, err := Rdb.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read key from redis")
	}
	return val, err
}
