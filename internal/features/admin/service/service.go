package service

import (
	"context"
	"errors"
	"time"

	"arenax-backend/internal/common/cache"
	"arenax-backend/internal/common/logger"
	"arenax-backend/internal/features/admin/models"
	"arenax-backend/internal/features/admin/repository"
	sessionmodels "arenax-backend/internal/features/session/models"
	tournamentmodels "arenax-backend/internal/features/tournament/models"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidInput = errors.New("invalid tournament input")
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 60 * time.Second
)

type AdminService interface {
	Stats(ctx context.Context) (*models.Stats, error)
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, userID string) (*models.User, error)
	SetBalanceBlocked(ctx context.Context, userID string, blocked bool) error

	CreateTournament(ctx context.Context, input repository.TournamentInput) (*tournamentmodels.Tournament, error)
	UpdateTournament(ctx context.Context, id string, input repository.TournamentInput) (*tournamentmodels.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	DeclareResults(ctx context.Context, tournamentID string, results []models.ResultEntry) error

	PendingWithdrawals(ctx context.Context) ([]models.PendingWithdrawal, error)
	ReviewWithdrawal(ctx context.Context, id string, approve bool, note string) error

	TeamMembers(ctx context.Context) ([]models.TeamMember, error)
	SetRole(ctx context.Context, userID, role string) error
}

type adminService struct {
	repo  repository.AdminRepository
	cache *cache.Service
}

func NewAdminService(repo repository.AdminRepository, cacheService *cache.Service) AdminService {
	return &adminService{repo: repo, cache: cacheService}
}

func (s *adminService) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := s.cache.GetOrSet(ctx, statsCacheKey, &stats, statsCacheTTL, func() (interface{}, error) {
		return s.repo.Stats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *adminService) Users(ctx context.Context) ([]models.User, error) {
	return s.repo.Users(ctx)
}

func (s *adminService) User(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.User(ctx, userID)
}

func (s *adminService) SetBalanceBlocked(ctx context.Context, userID string, blocked bool) error {
	if err := s.repo.SetBalanceBlocked(ctx, userID, blocked); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func validateInput(input repository.TournamentInput) error {
	if input.Title == "" || input.GameName == "" {
		return ErrInvalidInput
	}
	if input.MaxPlayers <= 0 || input.EntryFee < 0 || input.PrizePool < 0 {
		return ErrInvalidInput
	}
	if input.Status != "" && !input.Status.Valid() {
		return ErrInvalidInput
	}
	return nil
}

func (s *adminService) CreateTournament(ctx context.Context, input repository.TournamentInput) (*tournamentmodels.Tournament, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = tournamentmodels.StatusUpcoming
	}

	tournament, err := s.repo.CreateTournament(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidateTournaments(ctx, "")
	return tournament, nil
}

func (s *adminService) UpdateTournament(ctx context.Context, id string, input repository.TournamentInput) (*tournamentmodels.Tournament, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	tournament, err := s.repo.UpdateTournament(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.invalidateTournaments(ctx, id)
	return tournament, nil
}

func (s *adminService) DeleteTournament(ctx context.Context, id string) error {
	if err := s.repo.DeleteTournament(ctx, id); err != nil {
		return err
	}
	s.invalidateTournaments(ctx, id)
	return nil
}

func (s *adminService) DeclareResults(ctx context.Context, tournamentID string, results []models.ResultEntry) error {
	if len(results) == 0 {
		return ErrInvalidInput
	}
	if err := s.repo.DeclareResults(ctx, tournamentID, results); err != nil {
		return err
	}
	s.invalidateTournaments(ctx, tournamentID)
	return nil
}

func (s *adminService) PendingWithdrawals(ctx context.Context) ([]models.PendingWithdrawal, error) {
	return s.repo.PendingWithdrawals(ctx)
}

func (s *adminService) ReviewWithdrawal(ctx context.Context, id string, approve bool, note string) error {
	if err := s.repo.ReviewWithdrawal(ctx, id, approve, note); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *adminService) TeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.repo.TeamMembers(ctx)
}

func (s *adminService) SetRole(ctx context.Context, userID, role string) error {
	if !sessionmodels.Role(role).Valid() {
		return ErrInvalidRole
	}
	return s.repo.SetRole(ctx, userID, role)
}

func (s *adminService) invalidateStats(ctx context.Context) {
	if err := s.cache.InvalidateAdminStats(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate admin stats cache")
	}
}

func (s *adminService) invalidateTournaments(ctx context.Context, id string) {
	if err := s.cache.InvalidateTournaments(ctx, id); err != nil {
		logger.Warn().Err(err).Str("tournament_id", id).Msg("Failed to invalidate tournament cache")
	}
}
