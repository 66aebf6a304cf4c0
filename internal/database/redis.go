package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"holocron/config"
	"holocron/internal/logger"
)

// NewRedis connects to redis when enabled. A disabled config returns nil, nil.
func NewRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	log := logger.WithComponent("redis")
	if !cfg.Enabled {
		log.Info("redis disabled, using in-memory rate limiting")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	log.Info("redis connection established", "addr", cfg.Addr)
	return rdb, nil
}
