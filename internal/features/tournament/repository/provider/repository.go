// Package provider implements the tournament repository against the hosted
// data API.
package provider

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"arenax-backend/internal/features/tournament/models"
	"arenax-backend/internal/features/tournament/repository"
	platform "arenax-backend/internal/platform/provider"
)

const (
	tournamentsTable = "tournaments"
	playersTable     = "tournament_players"
	resultsTable     = "match_results"
	leaderboardView  = "leaderboard"
	historyView      = "match_history"
)

type providerRepository struct {
	client *platform.Client
}

func NewProviderRepository(client *platform.Client) repository.TournamentRepository {
	return &providerRepository{client: client}
}

func (r *providerRepository) List(ctx context.Context, status models.Status) ([]models.Tournament, error) {
	filters := platform.Filters{}
	if status != "" {
		filters["status"] = "eq." + string(status)
	}
	query := url.Values{}
	query.Set("order", "start_time.asc")

	tournaments := []models.Tournament{}
	if err := r.client.Select(ctx, "", tournamentsTable, filters, query, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *providerRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	var tournament models.Tournament
	err := r.client.SelectOne(ctx, "", tournamentsTable, "",
		platform.Filters{"id": "eq." + id}, &tournament)
	if err != nil {
		if platform.IsNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	players := []models.MatchPlayer{}
	err = r.client.Select(ctx, "", playersTable,
		platform.Filters{"tournament_id": "eq." + id}, nil, &players)
	if err != nil {
		return nil, err
	}

	return &models.Match{Tournament: tournament, Players: players}, nil
}

type joinArgs struct {
	TournamentID string `json:"p_tournament_id"`
}

func (r *providerRepository) Join(ctx context.Context, accessToken, tournamentID string) error {
	err := r.client.RPC(ctx, accessToken, "join_tournament", joinArgs{TournamentID: tournamentID}, nil)
	if err != nil {
		return mapJoinError(err)
	}
	return nil
}

// mapJoinError translates errors raised by the join_tournament database
// function into repository sentinels.
func mapJoinError(err error) error {
	apiErr, ok := platform.AsAPIError(err)
	if !ok {
		if platform.IsNotFound(err) {
			return repository.ErrNotFound
		}
		return err
	}

	msg := strings.ToLower(apiErr.Message)
	switch {
	case strings.Contains(msg, "not found"):
		return repository.ErrNotFound
	case strings.Contains(msg, "full"):
		return repository.ErrFull
	case strings.Contains(msg, "closed"), strings.Contains(msg, "not open"):
		return repository.ErrClosed
	case strings.Contains(msg, "already"):
		return repository.ErrAlreadyJoined
	case strings.Contains(msg, "insufficient"):
		return repository.ErrInsufficientBalance
	}
	return err
}

func (r *providerRepository) MyMatches(ctx context.Context, accessToken, userID string) ([]models.MatchHistory, error) {
	query := url.Values{}
	query.Set("order", "played_at.desc")

	history := []models.MatchHistory{}
	err := r.client.Select(ctx, accessToken, historyView,
		platform.Filters{"user_id": "eq." + userID}, query, &history)
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (r *providerRepository) Results(ctx context.Context, tournamentID string) ([]models.MatchResult, error) {
	query := url.Values{}
	query.Set("order", "position.asc")

	results := []models.MatchResult{}
	err := r.client.Select(ctx, "", resultsTable,
		platform.Filters{"tournament_id": "eq." + tournamentID}, query, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *providerRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	query := url.Values{}
	query.Set("order", "total_winnings.desc")
	query.Set("limit", strconv.Itoa(limit))

	entries := []models.LeaderboardEntry{}
	if err := r.client.Select(ctx, "", leaderboardView, nil, query, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
