package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/features/session/models"
	"arenax-backend/internal/features/session/service"
)

func TestResolveFillsEmailAndDefaults(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.setRow(testUserID, models.Profile{Username: "", Role: ""})

	resolver := service.NewProfileResolver(profiles)
	identity := models.Identity{ID: testUserID, Email: "player@example.com"}

	profile, err := resolver.Resolve(context.Background(), "token", identity)
	require.NoError(t, err)
	assert.Equal(t, "player@example.com", profile.Email)
	assert.Equal(t, "Gamer", profile.Username)
	assert.Equal(t, models.RoleUser, profile.Role)
}

func TestResolveMissingRowYieldsPlaceholder(t *testing.T) {
	resolver := service.NewProfileResolver(newFakeProfiles())
	identity := models.Identity{ID: testUserID, Email: "player@example.com"}

	profile, err := resolver.Resolve(context.Background(), "token", identity)
	require.NoError(t, err)
	assert.Equal(t, "New User", profile.Username)
	assert.Equal(t, "Update Profile", profile.IGN)
	assert.Equal(t, testUserID, profile.ID)
}

func TestResolveTransportErrorPropagates(t *testing.T) {
	profiles := newFakeProfiles()
	transportErr := errors.New("connection reset")
	profiles.setGetErr(transportErr)

	resolver := service.NewProfileResolver(profiles)
	_, err := resolver.Resolve(context.Background(), "token", models.Identity{ID: testUserID})
	require.ErrorIs(t, err, transportErr)
}
