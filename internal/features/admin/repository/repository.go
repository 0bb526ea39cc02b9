package repository

import (
	"context"
	"errors"

	"arenax-backend/internal/features/admin/models"
	tournamentmodels "arenax-backend/internal/features/tournament/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyReviewed = errors.New("withdrawal already reviewed")
)

// TournamentInput carries the editable tournament fields.
type TournamentInput struct {
	Title       string                  `json:"title"`
	GameName    string                  `json:"game_name"`
	EntryFee    int64                   `json:"entry_fee"`
	PrizePool   int64                   `json:"prize_pool"`
	MaxPlayers  int                     `json:"max_players"`
	StartTime   string                  `json:"start_time"`
	Status      tournamentmodels.Status `json:"status"`
	Description string                  `json:"description"`
	Rules       string                  `json:"rules"`
}

// AdminRepository performs privileged operations with the service key.
type AdminRepository interface {
	Stats(ctx context.Context) (*models.Stats, error)
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, userID string) (*models.User, error)
	SetBalanceBlocked(ctx context.Context, userID string, blocked bool) error

	CreateTournament(ctx context.Context, input TournamentInput) (*tournamentmodels.Tournament, error)
	UpdateTournament(ctx context.Context, id string, input TournamentInput) (*tournamentmodels.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	DeclareResults(ctx context.Context, tournamentID string, results []models.ResultEntry) error

	PendingWithdrawals(ctx context.Context) ([]models.PendingWithdrawal, error)
	ReviewWithdrawal(ctx context.Context, id string, approve bool, note string) error

	TeamMembers(ctx context.Context) ([]models.TeamMember, error)
	SetRole(ctx context.Context, userID, role string) error
}
