package service_test

import (
	"context"
	"path"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/common/cache"
	"arenax-backend/internal/features/tournament/models"
	"arenax-backend/internal/features/tournament/repository"
	"arenax-backend/internal/features/tournament/service"
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

type fakeTournamentRepo struct {
	listCalls int
	list      []models.Tournament
	joinErr   error
	joins     int
}

func (f *fakeTournamentRepo) List(ctx context.Context, status models.Status) ([]models.Tournament, error) {
	f.listCalls++
	return f.list, nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Match, error) {
	return &models.Match{Tournament: models.Tournament{ID: id}}, nil
}

func (f *fakeTournamentRepo) Join(ctx context.Context, accessToken, tournamentID string) error {
	f.joins++
	return f.joinErr
}

func (f *fakeTournamentRepo) MyMatches(ctx context.Context, accessToken, userID string) ([]models.MatchHistory, error) {
	return nil, nil
}

func (f *fakeTournamentRepo) Results(ctx context.Context, tournamentID string) ([]models.MatchResult, error) {
	return nil, nil
}

func (f *fakeTournamentRepo) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	return nil, nil
}

func TestListServedFromCache(t *testing.T) {
	repo := &fakeTournamentRepo{list: []models.Tournament{{ID: "t1", Title: "Friday Clash"}}}
	svc := service.NewTournamentService(repo, cache.New(newMemRedis()))
	ctx := context.Background()

	first, err := svc.List(ctx, models.StatusUpcoming)
	require.NoError(t, err)
	second, err := svc.List(ctx, models.StatusUpcoming)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestJoinErrorsPassThrough(t *testing.T) {
	for _, wantErr := range []error{
		repository.ErrNotFound,
		repository.ErrFull,
		repository.ErrClosed,
		repository.ErrAlreadyJoined,
		repository.ErrInsufficientBalance,
	} {
		repo := &fakeTournamentRepo{joinErr: wantErr}
		svc := service.NewTournamentService(repo, cache.New(newMemRedis()))

		err := svc.Join(context.Background(), "token", "u1", "t1")
		assert.ErrorIs(t, err, wantErr)
	}
}

func TestJoinInvalidatesCachedList(t *testing.T) {
	repo := &fakeTournamentRepo{list: []models.Tournament{{ID: "t1"}}}
	svc := service.NewTournamentService(repo, cache.New(newMemRedis()))
	ctx := context.Background()

	_, err := svc.List(ctx, models.StatusUpcoming)
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, "token", "u1", "t1"))

	_, err = svc.List(ctx, models.StatusUpcoming)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}
