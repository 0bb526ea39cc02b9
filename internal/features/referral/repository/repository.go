package repository

import (
	"context"

	"arenax-backend/internal/features/referral/models"
)

// ReferralRepository reads referral data scoped to the authenticated user.
type ReferralRepository interface {
	Stats(ctx context.Context, accessToken, userID string) (*models.Stats, error)
	Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error)
	Code(ctx context.Context, accessToken, userID string) (string, error)
}
