package repository

import (
	"context"
	"errors"

	"arenax-backend/internal/features/session/models"
)

// ErrNotFound reports a missing profile row; callers distinguish it from
// transport failures, which are returned as-is.
var ErrNotFound = errors.New("profile not found")

// ProfileRepository reads and writes profile rows on behalf of a session.
// The access token scopes row access to the authenticated user.
type ProfileRepository interface {
	GetByID(ctx context.Context, accessToken, userID string) (*models.Profile, error)
	Update(ctx context.Context, accessToken, userID string, update models.ProfileUpdate) error
}
