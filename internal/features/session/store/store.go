// Package store holds the single source of truth for one client session.
package store

import (
	"sync"

	"arenax-backend/internal/features/session/models"
)

// Store publishes session snapshots. Every mutation replaces the whole
// record; readers never observe partial field updates. The store leaves the
// loading states exactly once and never re-enters them.
type Store struct {
	mu   sync.RWMutex
	snap models.Snapshot
}

func New() *Store {
	return &Store{snap: models.Snapshot{State: models.StateUninitialized}}
}

// Snapshot returns the current published state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// StartLoading marks restoration in flight. Only valid from Uninitialized;
// later calls are ignored so bootstrap cannot re-enter the loading state.
func (s *Store) StartLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State == models.StateUninitialized {
		s.snap = models.Snapshot{State: models.StateLoading}
	}
}

// SetUser publishes an authenticated session. Copies are stored so callers
// cannot mutate the published record afterwards.
func (s *Store) SetUser(identity models.Identity, profile models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = models.Snapshot{
		State:    models.StateAuthenticated,
		Identity: &identity,
		Profile:  &profile,
	}
}

// Clear publishes an anonymous session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = models.Snapshot{State: models.StateAnonymous}
}
