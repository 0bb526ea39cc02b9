package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arenax-backend/internal/features/session/guard"
	"arenax-backend/internal/features/session/models"
)

func snap(state models.State, role models.Role) models.Snapshot {
	s := models.Snapshot{State: state}
	if state == models.StateAuthenticated {
		s.Identity = &models.Identity{ID: "u1"}
		s.Profile = &models.Profile{ID: "u1", Role: role}
	}
	return s
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		snap  models.Snapshot
		class guard.RouteClass
		want  guard.Decision
	}{
		{"public always allowed", snap(models.StateAnonymous, ""), guard.RoutePublic, guard.Allow},
		{"public allowed while loading", snap(models.StateLoading, ""), guard.RoutePublic, guard.Allow},
		{"authenticated waits while loading", snap(models.StateLoading, ""), guard.RouteAuthenticated, guard.Wait},
		{"authenticated waits while uninitialized", snap(models.StateUninitialized, ""), guard.RouteAuthenticated, guard.Wait},
		{"admin waits while loading", snap(models.StateLoading, ""), guard.RouteAdmin, guard.Wait},
		{"anonymous redirected to login", snap(models.StateAnonymous, ""), guard.RouteAuthenticated, guard.RedirectLogin},
		{"user allowed on authenticated route", snap(models.StateAuthenticated, models.RoleUser), guard.RouteAuthenticated, guard.Allow},
		{"anonymous redirected to admin login", snap(models.StateAnonymous, ""), guard.RouteAdmin, guard.RedirectAdminLogin},
		{"user redirected to admin login", snap(models.StateAuthenticated, models.RoleUser), guard.RouteAdmin, guard.RedirectAdminLogin},
		{"manager redirected to admin login", snap(models.StateAuthenticated, models.RoleTournamentManager), guard.RouteAdmin, guard.RedirectAdminLogin},
		{"admin allowed on admin route", snap(models.StateAuthenticated, models.RoleAdmin), guard.RouteAdmin, guard.Allow},
		{"admin allowed on authenticated route", snap(models.StateAuthenticated, models.RoleAdmin), guard.RouteAuthenticated, guard.Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guard.Decide(tt.snap, tt.class))
		})
	}
}
