package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/platform/provider"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *provider.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return provider.New(srv.URL, "anon-key", 2*time.Second)
}

func TestSignInWithPasswordSendsGrantAndHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "player@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "at",
			"refresh_token": "rt",
			"user":          map[string]string{"id": "u1", "email": "player@example.com"},
		})
	})

	token, err := client.SignInWithPassword(context.Background(), "player@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "at", token.AccessToken)
	assert.Equal(t, "u1", token.User.ID)
}

func TestSignInErrorPreservesProviderMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error_code":        "invalid_credentials",
			"error_description": "Invalid login credentials",
		})
	})

	_, err := client.SignInWithPassword(context.Background(), "player@example.com", "wrong")
	apiErr, ok := provider.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid_credentials", apiErr.Code)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
}

func TestSignUpReturnsSessionWhenIssued(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "at",
			"refresh_token": "rt",
			"user":          map[string]string{"id": "u1"},
		})
	})

	res, err := client.SignUp(context.Background(), "player@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, res.Token)
	assert.Equal(t, "u1", res.User.ID)
}

func TestSignUpReturnsBareUserWhenConfirmationPending(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"id":    "u1",
			"email": "player@example.com",
		})
	})

	res, err := client.SignUp(context.Background(), "player@example.com", "secret")
	require.NoError(t, err)
	assert.Nil(t, res.Token)
	assert.Equal(t, "u1", res.User.ID)
}

func TestSelectOneSendsObjectAcceptAndUserToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
		assert.Equal(t, "eq.u1", r.URL.Query().Get("id"))
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "username": "ProGamer"})
	})

	var row struct {
		Username string `json:"username"`
	}
	err := client.SelectOne(context.Background(), "user-token", "profiles", "",
		provider.Filters{"id": "eq.u1"}, &row)
	require.NoError(t, err)
	assert.Equal(t, "ProGamer", row.Username)
}

func TestSelectOneMissingRowIsErrNoRows(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"pgrst116", http.StatusNotAcceptable, `{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`},
		{"not acceptable", http.StatusNotAcceptable, `{}`},
		{"bare 404", http.StatusNotFound, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			var row struct{}
			err := client.SelectOne(context.Background(), "user-token", "profiles", "",
				provider.Filters{"id": "eq.missing"}, &row)
			assert.True(t, provider.IsNotFound(err))
		})
	}
}

func TestDataAPIErrorKeepsStringCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"23505","message":"duplicate key value"}`))
	})

	var rows []struct{}
	err := client.Select(context.Background(), "user-token", "profiles", nil, nil, &rows)
	apiErr, ok := provider.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "23505", apiErr.Code)
	assert.Equal(t, "duplicate key value", apiErr.Message)
}

func TestRPCPostsArgs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/rpc/join_tournament", r.URL.Path)

		var args map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&args))
		assert.Equal(t, "t1", args["p_tournament_id"])
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.RPC(context.Background(), "user-token", "join_tournament",
		map[string]string{"p_tournament_id": "t1"}, nil)
	require.NoError(t, err)
}

func TestDecodeAccessToken(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "p@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := provider.DecodeAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "p@example.com", claims.Email)
	assert.False(t, claims.Expired())

	_, err = provider.DecodeAccessToken("")
	assert.ErrorIs(t, err, provider.ErrNoToken)

	_, err = provider.DecodeAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, provider.ErrInvalidToken)
}
