// Package registry lifts the one-session-per-client model into a server
// fronting many clients: each opaque session ID maps to one Session
// instance with its own store. Sessions are created on login and restored
// from the token store after a restart; an ID with no live session and no
// persisted record attaches to nothing, so arbitrary bearer values never
// allocate a session.
package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"arenax-backend/internal/common/logger"
	"arenax-backend/internal/features/session/service"
)

type Registry struct {
	deps service.Deps

	mu       sync.Mutex
	sessions map[string]*service.Session
}

func New(deps service.Deps) *Registry {
	return &Registry{
		deps:     deps,
		sessions: make(map[string]*service.Session),
	}
}

// NewSession mints a fresh session ID for a client with no prior session.
func (r *Registry) NewSession(ctx context.Context) *service.Session {
	id := uuid.New().String()

	r.mu.Lock()
	sess := service.NewSession(id, r.deps)
	r.sessions[id] = sess
	r.mu.Unlock()

	sess.Bootstrap(ctx)
	return sess
}

// Attach returns the live Session for an ID. A session ID issued before a
// restart resolves through its persisted token record to the same
// authenticated state. IDs with neither a live session nor a record return
// nil: the caller proceeds anonymously and nothing is retained.
func (r *Registry) Attach(ctx context.Context, sessionID string) *service.Session {
	r.mu.Lock()
	sess, ok := r.sessions[sessionID]
	r.mu.Unlock()
	if ok {
		sess.Bootstrap(ctx)
		return sess
	}

	rec, err := r.deps.Tokens.Load(ctx, sessionID)
	if err != nil {
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("Token record lookup failed, treating as anonymous")
		return nil
	}
	if rec == nil {
		return nil
	}

	r.mu.Lock()
	if sess, ok = r.sessions[sessionID]; !ok {
		sess = service.NewSession(sessionID, r.deps)
		r.sessions[sessionID] = sess
	}
	r.mu.Unlock()

	sess.Bootstrap(ctx)
	return sess
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Remove evicts a session, releasing its subscriber goroutine. Persisted
// tokens are left to the session itself (logout deletes them).
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	sess, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	if ok {
		sess.Close()
	}
}

// Close releases every live session.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sess := range r.sessions {
		sess.Close()
		delete(r.sessions, id)
	}
}
