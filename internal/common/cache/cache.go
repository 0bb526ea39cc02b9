package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Rediser is the subset of go-redis used by the cache. Satisfied by
// *redis.Client and by miniredis-free fakes in tests.
type Rediser interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Keys(ctx context.Context, pattern string) *goredis.StringSliceCmd
}

type Service struct {
	rdb Rediser
}

func New(rdb Rediser) *Service {
	return &Service{rdb: rdb}
}

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = goredis.Nil

// Get loads a cached JSON value into dest.
func (c *Service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Set stores a value as JSON with the given TTL.
func (c *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.rdb.Set(ctx, key, string(data), ttl).Err()
}

// Delete removes a single key.
func (c *Service) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// DeletePattern removes every key matching the pattern.
func (c *Service) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.rdb.Del(ctx, keys...).Err()
	}
	return nil
}

// GetOrSet reads through the cache, filling it from setter on a miss.
func (c *Service) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := setter()
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// InvalidateTournaments drops cached tournament read models.
func (c *Service) InvalidateTournaments(ctx context.Context, tournamentID string) error {
	patterns := []string{
		"tournaments:list:*",
		"leaderboard",
	}
	if tournamentID != "" {
		patterns = append(patterns,
			fmt.Sprintf("tournament:%s", tournamentID),
			fmt.Sprintf("tournament_results:%s", tournamentID),
		)
	}

	for _, pattern := range patterns {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to delete pattern %s: %w", pattern, err)
		}
	}
	return nil
}

// InvalidateAdminStats drops the cached admin dashboard aggregate.
func (c *Service) InvalidateAdminStats(ctx context.Context) error {
	return c.DeletePattern(ctx, "admin:stats")
}
