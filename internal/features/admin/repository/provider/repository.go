// Package provider implements the admin repository against the hosted data
// API using the service key, bypassing row level security.
package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"arenax-backend/internal/features/admin/models"
	"arenax-backend/internal/features/admin/repository"
	tournamentmodels "arenax-backend/internal/features/tournament/models"
	platform "arenax-backend/internal/platform/provider"
)

const (
	statsView        = "admin_stats"
	usersView        = "admin_users"
	profilesTable    = "profiles"
	walletsTable     = "wallets"
	tournamentsTable = "tournaments"
	withdrawalsView  = "pending_withdrawals"
)

type providerRepository struct {
	client *platform.Client
}

// NewProviderRepository wraps a client configured with the service key. All
// calls pass an empty access token so the client authenticates as the
// service role.
func NewProviderRepository(client *platform.Client) repository.AdminRepository {
	return &providerRepository{client: client}
}

func (r *providerRepository) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := r.client.SelectOne(ctx, "", statsView, "", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *providerRepository) Users(ctx context.Context) ([]models.User, error) {
	query := url.Values{}
	query.Set("order", "created_at.desc")

	users := []models.User{}
	if err := r.client.Select(ctx, "", usersView, nil, query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *providerRepository) User(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.client.SelectOne(ctx, "", usersView, "",
		platform.Filters{"id": "eq." + userID}, &user)
	if err != nil {
		if platform.IsNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *providerRepository) SetBalanceBlocked(ctx context.Context, userID string, blocked bool) error {
	patch := map[string]bool{"is_blocked": blocked}
	updated := []struct {
		UserID string `json:"user_id"`
	}{}
	err := r.client.Update(ctx, "", walletsTable,
		platform.Filters{"user_id": "eq." + userID}, patch, &updated)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *providerRepository) CreateTournament(ctx context.Context, input repository.TournamentInput) (*tournamentmodels.Tournament, error) {
	created := []tournamentmodels.Tournament{}
	if err := r.client.Insert(ctx, "", tournamentsTable, input, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("tournament insert returned no representation")
	}
	return &created[0], nil
}

func (r *providerRepository) UpdateTournament(ctx context.Context, id string, input repository.TournamentInput) (*tournamentmodels.Tournament, error) {
	updated := []tournamentmodels.Tournament{}
	err := r.client.Update(ctx, "", tournamentsTable,
		platform.Filters{"id": "eq." + id}, input, &updated)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, repository.ErrNotFound
	}
	return &updated[0], nil
}

func (r *providerRepository) DeleteTournament(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "", tournamentsTable, platform.Filters{"id": "eq." + id})
}

func (r *providerRepository) DeclareResults(ctx context.Context, tournamentID string, results []models.ResultEntry) error {
	args := map[string]interface{}{
		"p_tournament_id": tournamentID,
		"p_results":       results,
	}
	err := r.client.RPC(ctx, "", "declare_results", args, nil)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "not found") {
		return repository.ErrNotFound
	}
	return err
}

func (r *providerRepository) PendingWithdrawals(ctx context.Context) ([]models.PendingWithdrawal, error) {
	query := url.Values{}
	query.Set("order", "requested_at.asc")

	withdrawals := []models.PendingWithdrawal{}
	if err := r.client.Select(ctx, "", withdrawalsView, nil, query, &withdrawals); err != nil {
		return nil, err
	}
	return withdrawals, nil
}

func (r *providerRepository) ReviewWithdrawal(ctx context.Context, id string, approve bool, note string) error {
	args := map[string]interface{}{
		"p_withdrawal_id": id,
		"p_approve":       approve,
		"p_note":          note,
	}
	err := r.client.RPC(ctx, "", "review_withdrawal", args, nil)
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found"):
		return repository.ErrNotFound
	case strings.Contains(msg, "already"):
		return repository.ErrAlreadyReviewed
	}
	return err
}

func (r *providerRepository) TeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	query := url.Values{}
	query.Set("order", "created_at.asc")

	members := []models.TeamMember{}
	err := r.client.Select(ctx, "", profilesTable,
		platform.Filters{"role": "neq.user"}, query, &members)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *providerRepository) SetRole(ctx context.Context, userID, role string) error {
	patch := map[string]string{"role": role}
	updated := []struct {
		ID string `json:"id"`
	}{}
	err := r.client.Update(ctx, "", profilesTable,
		platform.Filters{"id": "eq." + userID}, patch, &updated)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return repository.ErrNotFound
	}
	return nil
}
