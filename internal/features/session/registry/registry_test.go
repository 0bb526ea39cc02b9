package registry_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/features/session/models"
	"arenax-backend/internal/features/session/registry"
	"arenax-backend/internal/features/session/repository"
	"arenax-backend/internal/features/session/service"
	"arenax-backend/internal/platform/provider"
)

type stubAuth struct{}

func (stubAuth) SignInWithPassword(ctx context.Context, email, password string) (*provider.Token, error) {
	return nil, nil
}
func (stubAuth) SignUp(ctx context.Context, email, password string) (*provider.SignUpResult, error) {
	return nil, nil
}
func (stubAuth) RefreshToken(ctx context.Context, refreshToken string) (*provider.Token, error) {
	return nil, nil
}
func (stubAuth) SignOut(ctx context.Context, accessToken string) error { return nil }

type stubProfiles struct{}

func (stubProfiles) GetByID(ctx context.Context, accessToken, userID string) (*models.Profile, error) {
	return nil, repository.ErrNotFound
}
func (stubProfiles) Update(ctx context.Context, accessToken, userID string, update models.ProfileUpdate) error {
	return nil
}

type recTokens struct {
	mu   sync.Mutex
	recs map[string]service.TokenRecord
}

func newRecTokens() *recTokens {
	return &recTokens{recs: make(map[string]service.TokenRecord)}
}

func (r *recTokens) Save(ctx context.Context, rec service.TokenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.SessionID] = rec
	return nil
}

func (r *recTokens) Load(ctx context.Context, sessionID string) (*service.TokenRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[sessionID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *recTokens) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recs, sessionID)
	return nil
}

func (r *recTokens) persist(t *testing.T, sessionID, userID string) {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": "player@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	require.NoError(t, r.Save(context.Background(), service.TokenRecord{
		SessionID:    sessionID,
		UserID:       userID,
		AccessToken:  signed,
		RefreshToken: "refresh-" + sessionID,
		SavedAt:      time.Now(),
	}))
}

func newTestRegistry(t *testing.T, tokens service.TokenStore) *registry.Registry {
	t.Helper()
	reg := registry.New(service.Deps{
		Authenticator: stubAuth{},
		Profiles:      stubProfiles{},
		Tokens:        tokens,
		RefreshLeeway: time.Minute,
	})
	t.Cleanup(reg.Close)
	return reg
}

func TestAttachReturnsSameInstance(t *testing.T) {
	tokens := newRecTokens()
	tokens.persist(t, "sess-1", "u1")
	tokens.persist(t, "sess-2", "u2")
	reg := newTestRegistry(t, tokens)
	ctx := context.Background()

	first := reg.Attach(ctx, "sess-1")
	second := reg.Attach(ctx, "sess-1")
	require.NotNil(t, first)
	assert.Same(t, first, second)

	other := reg.Attach(ctx, "sess-2")
	assert.NotSame(t, first, other)
}

func TestAttachRestoresPersistedRecord(t *testing.T) {
	tokens := newRecTokens()
	tokens.persist(t, "sess-1", "u1")
	reg := newTestRegistry(t, tokens)

	sess := reg.Attach(context.Background(), "sess-1")
	require.NotNil(t, sess)
	require.Eventually(t, func() bool {
		snap := sess.Snapshot()
		return snap.IsAuthenticated() && snap.Identity.ID == "u1"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAttachUnknownIDRetainsNothing(t *testing.T) {
	reg := newTestRegistry(t, newRecTokens())
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		assert.Nil(t, reg.Attach(ctx, fmt.Sprintf("garbage-%d", i)))
	}
	assert.Zero(t, reg.Len())
}

func TestNewSessionMintsUniqueIDs(t *testing.T) {
	reg := newTestRegistry(t, newRecTokens())
	ctx := context.Background()

	a := reg.NewSession(ctx)
	b := reg.NewSession(ctx)
	require.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, reg.Len())
}

func TestFreshSessionAttachesBeforeFirstSave(t *testing.T) {
	reg := newTestRegistry(t, newRecTokens())
	ctx := context.Background()

	minted := reg.NewSession(ctx)
	assert.Same(t, minted, reg.Attach(ctx, minted.ID()))
}

func TestRemoveEvicts(t *testing.T) {
	tokens := newRecTokens()
	tokens.persist(t, "sess-1", "u1")
	reg := newTestRegistry(t, tokens)
	ctx := context.Background()

	first := reg.Attach(ctx, "sess-1")
	require.NotNil(t, first)
	reg.Remove("sess-1")
	assert.Zero(t, reg.Len())

	replacement := reg.Attach(ctx, "sess-1")
	require.NotNil(t, replacement)
	assert.NotSame(t, first, replacement)
}
