package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection settings. Zero timeouts fall back to
// DefaultRedisTimeout.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

const (
	DefaultRedisTimeout = 500 * time.Millisecond
	redisPingTimeout    = 2 * time.Second
)

func (c RedisConfig) options() *redis.Options {
	orDefault := func(d time.Duration) time.Duration {
		if d <= 0 {
			return DefaultRedisTimeout
		}
		return d
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  orDefault(c.DialTimeout),
		ReadTimeout:  orDefault(c.ReadTimeout),
		WriteTimeout: orDefault(c.WriteTimeout),
		PoolSize:     c.PoolSize,
	}
}

// NewRedisClient connects to Redis and checks it with a bounded PING. The
// client is closed when the ping fails.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
