package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/features/session/models"
	"arenax-backend/internal/features/session/store"
)

func TestLifecycle(t *testing.T) {
	s := store.New()
	assert.Equal(t, models.StateUninitialized, s.Snapshot().State)

	s.StartLoading()
	assert.Equal(t, models.StateLoading, s.Snapshot().State)

	s.SetUser(models.Identity{ID: "u1"}, models.Profile{Username: "ProGamer"})
	snap := s.Snapshot()
	require.True(t, snap.IsAuthenticated())
	assert.Equal(t, "ProGamer", snap.Profile.Username)

	s.Clear()
	assert.Equal(t, models.StateAnonymous, s.Snapshot().State)
}

func TestLoadingNeverReenters(t *testing.T) {
	s := store.New()
	s.StartLoading()
	s.Clear()

	// A second bootstrap attempt must not push the session back to loading.
	s.StartLoading()
	assert.Equal(t, models.StateAnonymous, s.Snapshot().State)
}

func TestSnapshotIsolatedFromCallerMutation(t *testing.T) {
	s := store.New()
	identity := models.Identity{ID: "u1"}
	profile := models.Profile{Username: "ProGamer"}
	s.SetUser(identity, profile)

	profile.Username = "Mutated"
	assert.Equal(t, "ProGamer", s.Snapshot().Profile.Username)
}
