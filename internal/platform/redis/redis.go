// Package redis owns the Redis connection shared by the response cache and
// the session token store.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config selects the Redis instance backing caches and session records.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client is the shared connection handle.
type Client struct {
	*redis.Client
}

// Open dials Redis and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: no address configured")
	}
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return &Client{Client: c}, nil
}
