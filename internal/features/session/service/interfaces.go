package service

import (
	"context"
	"time"

	"arenax-backend/internal/platform/provider"
)

// Authenticator is the subset of the provider auth API the session core
// consumes. Implemented by *provider.Client; faked in tests.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*provider.Token, error)
	SignUp(ctx context.Context, email, password string) (*provider.SignUpResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*provider.Token, error)
	SignOut(ctx context.Context, accessToken string) error
}

// TokenRecord is the persisted token pair that lets a session survive a
// process restart.
type TokenRecord struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	SavedAt      time.Time `json:"saved_at"`
}

// TokenStore persists token records keyed by session ID. Load returns
// (nil, nil) when no record exists.
type TokenStore interface {
	Save(ctx context.Context, rec TokenRecord) error
	Load(ctx context.Context, sessionID string) (*TokenRecord, error)
	Delete(ctx context.Context, sessionID string) error
}
