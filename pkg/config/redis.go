package config

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// InitRedis opens the Redis client backing the login rate limiter.
func InitRedis(cfg *Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis connect failed: %w", err)
	}
	log.Println("Successfully connected to Redis!")
	return rdb, nil
}
