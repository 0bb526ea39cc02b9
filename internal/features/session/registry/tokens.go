package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arenax-backend/internal/common/cache"
	"arenax-backend/internal/features/session/service"
)

// redisTokenStore persists token records so sessions survive a process
// restart. Records expire with the provider refresh-token lifetime.
type redisTokenStore struct {
	cache *cache.Service
	ttl   time.Duration
}

func NewTokenStore(c *cache.Service, ttl time.Duration) service.TokenStore {
	return &redisTokenStore{cache: c, ttl: ttl}
}

func tokenKey(sessionID string) string {
	return fmt.Sprintf("session:tokens:%s", sessionID)
}

func (s *redisTokenStore) Save(ctx context.Context, rec service.TokenRecord) error {
	return s.cache.Set(ctx, tokenKey(rec.SessionID), rec, s.ttl)
}

func (s *redisTokenStore) Load(ctx context.Context, sessionID string) (*service.TokenRecord, error) {
	var rec service.TokenRecord
	err := s.cache.Get(ctx, tokenKey(sessionID), &rec)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, tokenKey(sessionID))
}
