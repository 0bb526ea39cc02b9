package cache_test

import (
	"context"
	"errors"
	"path"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/common/cache"
)

type memRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemRedis() *memRedis {
	return &memRedis{data: make(map[string]string)}
}

func (m *memRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return goredis.NewStringResult(v, nil)
	}
	return goredis.NewStringResult("", goredis.Nil)
}

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *goredis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.(string)
	return goredis.NewStatusResult("OK", nil)
}

func (m *memRedis) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (m *memRedis) Keys(ctx context.Context, pattern string) *goredis.StringSliceCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	return goredis.NewStringSliceResult(keys, nil)
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetGetRoundtrip(t *testing.T) {
	svc := cache.New(newMemRedis())
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", payload{Name: "arena", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "arena", Count: 3}, got)
}

func TestGetMiss(t *testing.T) {
	svc := cache.New(newMemRedis())

	var got payload
	err := svc.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestGetOrSetFillsOnMiss(t *testing.T) {
	svc := cache.New(newMemRedis())
	ctx := context.Background()

	calls := 0
	setter := func() (interface{}, error) {
		calls++
		return payload{Name: "arena"}, nil
	}

	var got payload
	require.NoError(t, svc.GetOrSet(ctx, "k", &got, time.Minute, setter))
	require.NoError(t, svc.GetOrSet(ctx, "k", &got, time.Minute, setter))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "arena", got.Name)
}

func TestGetOrSetSetterErrorPropagates(t *testing.T) {
	svc := cache.New(newMemRedis())

	wantErr := errors.New("upstream down")
	var got payload
	err := svc.GetOrSet(context.Background(), "k", &got, time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestInvalidateTournaments(t *testing.T) {
	rdb := newMemRedis()
	svc := cache.New(rdb)
	ctx := context.Background()

	for _, key := range []string{
		"tournaments:list:upcoming",
		"tournaments:list:live",
		"leaderboard",
		"tournament:t1",
		"tournament_results:t1",
		"tournament:t2",
		"session:tokens:abc",
	} {
		require.NoError(t, svc.Set(ctx, key, payload{}, time.Minute))
	}

	require.NoError(t, svc.InvalidateTournaments(ctx, "t1"))

	var got payload
	assert.ErrorIs(t, svc.Get(ctx, "tournaments:list:upcoming", &got), cache.ErrMiss)
	assert.ErrorIs(t, svc.Get(ctx, "leaderboard", &got), cache.ErrMiss)
	assert.ErrorIs(t, svc.Get(ctx, "tournament:t1", &got), cache.ErrMiss)
	assert.NoError(t, svc.Get(ctx, "tournament:t2", &got))
	assert.NoError(t, svc.Get(ctx, "session:tokens:abc", &got))
}
