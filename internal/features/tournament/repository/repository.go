package repository

import (
	"context"
	"errors"

	"arenax-backend/internal/features/tournament/models"
)

var (
	ErrNotFound            = errors.New("tournament not found")
	ErrFull                = errors.New("tournament is full")
	ErrClosed              = errors.New("tournament is not open for registration")
	ErrAlreadyJoined       = errors.New("already joined this tournament")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

// TournamentRepository reads tournament data and performs joins through the
// hosted data API. Join runs server-side (seat check + balance debit in one
// transaction) via an RPC.
type TournamentRepository interface {
	List(ctx context.Context, status models.Status) ([]models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	Join(ctx context.Context, accessToken, tournamentID string) error
	MyMatches(ctx context.Context, accessToken, userID string) ([]models.MatchHistory, error)
	Results(ctx context.Context, tournamentID string) ([]models.MatchResult, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}
