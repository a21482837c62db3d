package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
)

// NewRedisClient connects to addr and fails fast when it does not answer a ping.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	zlog.Info().Str("addr", addr).Int("db", db).Msg("redis connected")
	return client, nil
}
