package service

import (
	"context"

	"arenax-backend/internal/features/referral/models"
	"arenax-backend/internal/features/referral/repository"
)

type ReferralService interface {
	Stats(ctx context.Context, accessToken, userID string) (*models.Stats, error)
	Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error)
	Code(ctx context.Context, accessToken, userID string) (string, error)
	Terms() models.Terms
}

type referralService struct {
	repo  repository.ReferralRepository
	terms models.Terms
}

func NewReferralService(repo repository.ReferralRepository, terms models.Terms) ReferralService {
	return &referralService{repo: repo, terms: terms}
}

func (s *referralService) Stats(ctx context.Context, accessToken, userID string) (*models.Stats, error) {
	return s.repo.Stats(ctx, accessToken, userID)
}

func (s *referralService) Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error) {
	return s.repo.Transactions(ctx, accessToken, userID)
}

func (s *referralService) Code(ctx context.Context, accessToken, userID string) (string, error) {
	return s.repo.Code(ctx, accessToken, userID)
}

func (s *referralService) Terms() models.Terms {
	return s.terms
}
