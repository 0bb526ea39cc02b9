package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/features/admin/models"
	"arenax-backend/internal/features/admin/repository"
	"arenax-backend/internal/features/admin/service"
	tournamentmodels "arenax-backend/internal/features/tournament/models"
)

type fakeAdminRepo struct {
	repository.AdminRepository

	roles map[string]string
}

func (f *fakeAdminRepo) SetRole(ctx context.Context, userID, role string) error {
	if f.roles == nil {
		f.roles = make(map[string]string)
	}
	f.roles[userID] = role
	return nil
}

func TestCreateTournamentRejectsInvalidInput(t *testing.T) {
	svc := service.NewAdminService(&fakeAdminRepo{}, nil)

	tests := []struct {
		name  string
		input repository.TournamentInput
	}{
		{"missing title", repository.TournamentInput{GameName: "Free Fire", MaxPlayers: 48}},
		{"missing game", repository.TournamentInput{Title: "Friday Clash", MaxPlayers: 48}},
		{"zero players", repository.TournamentInput{Title: "Friday Clash", GameName: "Free Fire"}},
		{"negative fee", repository.TournamentInput{Title: "Friday Clash", GameName: "Free Fire", MaxPlayers: 48, EntryFee: -1}},
		{"bad status", repository.TournamentInput{Title: "Friday Clash", GameName: "Free Fire", MaxPlayers: 48, Status: "archived"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTournament(context.Background(), tt.input)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
}

func TestUpdateTournamentRejectsInvalidStatus(t *testing.T) {
	svc := service.NewAdminService(&fakeAdminRepo{}, nil)

	_, err := svc.UpdateTournament(context.Background(), "t1", repository.TournamentInput{
		Title:      "Friday Clash",
		GameName:   "Free Fire",
		MaxPlayers: 48,
		Status:     tournamentmodels.Status("archived"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDeclareResultsRequiresEntries(t *testing.T) {
	svc := service.NewAdminService(&fakeAdminRepo{}, nil)

	err := svc.DeclareResults(context.Background(), "t1", nil)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	err = svc.DeclareResults(context.Background(), "t1", []models.ResultEntry{})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestSetRoleValidatesRole(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := service.NewAdminService(repo, nil)

	err := svc.SetRole(context.Background(), "u1", "superuser")
	assert.ErrorIs(t, err, service.ErrInvalidRole)
	assert.Empty(t, repo.roles)

	require.NoError(t, svc.SetRole(context.Background(), "u1", "tournament_manager"))
	assert.Equal(t, "tournament_manager", repo.roles["u1"])
}
