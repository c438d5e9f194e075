package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// ConnectRedis initializes the singleton Redis client. Redis is optional: when REDIS_ADDR is
// empty or the environment is "test" it returns (nil, nil) and callers fall back to no-op behavior.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		cfg := LoadConfig()
		if cfg.IsTest() || cfg.RedisAddr == "" {
			return
		}

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err = rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			err = fmt.Errorf("redis ping failed: %w", err)
			return
		}
		redisClient = rdb
	})
	return redisClient, err
}

// GetRedisClient returns the initialized Redis client, nil when Redis is not in use.
func GetRedisClient() *redis.Client {
	return redisClient
}

// SetRedisClientForTest injects a (mock) Redis client. Only for tests.
func SetRedisClientForTest(client *redis.Client) {
	redisClient = client
}

// ResetRedisClientForTest clears the Redis singleton. Only for tests.
func ResetRedisClientForTest() {
	redisClient = nil
	redisOnce = sync.Once{}
}
