package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionprovider "arenax-backend/internal/features/session/repository/provider"
	"arenax-backend/internal/features/session/service"
	platform "arenax-backend/internal/platform/provider"
)

// Full login/logout round trip against a fake hosted provider: the
// password grant, the profile fetch and the revocation all go over HTTP.
func TestSessionRoundTripAgainstProvider(t *testing.T) {
	const userID = "e2e-user"
	access := mintToken(t, userID, time.Now().Add(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  access,
			"token_type":    "bearer",
			"expires_in":    3600,
			"refresh_token": "rt-e2e",
			"user":          map[string]string{"id": userID, "email": "player@example.com"},
		})
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer "+access, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/rest/v1/profiles", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "eq."+userID, r.URL.Query().Get("id"))
		require.Equal(t, "Bearer "+access, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       userID,
			"username": "ProGamer",
			"ign":      "PG",
			"role":     "user",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := platform.New(srv.URL, "anon-key", 2*time.Second)
	sess := service.NewSession("sess-e2e", service.Deps{
		Authenticator: client,
		Profiles:      sessionprovider.NewProviderRepository(client),
		Tokens:        newMemTokens(),
		RefreshLeeway: time.Minute,
	})
	t.Cleanup(sess.Close)

	sess.Bootstrap(context.Background())
	require.Eventually(t, func() bool {
		return !sess.Snapshot().IsLoading()
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, sess.Snapshot().IsAuthenticated())

	require.NoError(t, sess.Login(context.Background(), "player@example.com", "secret"))
	require.Eventually(t, func() bool {
		snap := sess.Snapshot()
		return snap.IsAuthenticated() && snap.Profile != nil && snap.Profile.Username == "ProGamer"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, access, sess.AccessToken())

	require.NoError(t, sess.Logout(context.Background()))
	require.Eventually(t, func() bool {
		return !sess.Snapshot().IsAuthenticated()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, sess.AccessToken())
}
