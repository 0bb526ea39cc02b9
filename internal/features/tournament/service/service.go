package service

import (
	"context"
	"fmt"
	"time"

	"arenax-backend/internal/common/cache"
	"arenax-backend/internal/features/tournament/models"
	"arenax-backend/internal/features/tournament/repository"
)

const (
	listTTL        = 30 * time.Second
	detailTTL      = 15 * time.Second
	leaderboardTTL = time.Minute

	leaderboardSize = 50
)

type TournamentService interface {
	List(ctx context.Context, status models.Status) ([]models.Tournament, error)
	Get(ctx context.Context, id string) (*models.Match, error)
	Join(ctx context.Context, accessToken, userID, tournamentID string) error
	MyMatches(ctx context.Context, accessToken, userID string) ([]models.MatchHistory, error)
	Results(ctx context.Context, tournamentID string) ([]models.MatchResult, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type tournamentService struct {
	repo  repository.TournamentRepository
	cache *cache.Service
}

func NewTournamentService(repo repository.TournamentRepository, cacheService *cache.Service) TournamentService {
	return &tournamentService{repo: repo, cache: cacheService}
}

func (s *tournamentService) List(ctx context.Context, status models.Status) ([]models.Tournament, error) {
	key := fmt.Sprintf("tournaments:list:%s", status)
	var tournaments []models.Tournament
	err := s.cache.GetOrSet(ctx, key, &tournaments, listTTL, func() (interface{}, error) {
		return s.repo.List(ctx, status)
	})
	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (s *tournamentService) Get(ctx context.Context, id string) (*models.Match, error) {
	key := fmt.Sprintf("tournament:%s", id)
	var match models.Match
	err := s.cache.GetOrSet(ctx, key, &match, detailTTL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *tournamentService) Join(ctx context.Context, accessToken, userID, tournamentID string) error {
	if err := s.repo.Join(ctx, accessToken, tournamentID); err != nil {
		return err
	}
	_ = s.cache.InvalidateTournaments(ctx, tournamentID)
	return nil
}

func (s *tournamentService) MyMatches(ctx context.Context, accessToken, userID string) ([]models.MatchHistory, error) {
	return s.repo.MyMatches(ctx, accessToken, userID)
}

func (s *tournamentService) Results(ctx context.Context, tournamentID string) ([]models.MatchResult, error) {
	key := fmt.Sprintf("tournament_results:%s", tournamentID)
	var results []models.MatchResult
	err := s.cache.GetOrSet(ctx, key, &results, leaderboardTTL, func() (interface{}, error) {
		return s.repo.Results(ctx, tournamentID)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *tournamentService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.cache.GetOrSet(ctx, "leaderboard", &entries, leaderboardTTL, func() (interface{}, error) {
		return s.repo.Leaderboard(ctx, leaderboardSize)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
