// Package provider implements the referral repository against the hosted
// data API.
package provider

import (
	"context"
	"net/url"

	"arenax-backend/internal/features/referral/models"
	"arenax-backend/internal/features/referral/repository"
	platform "arenax-backend/internal/platform/provider"
)

const (
	statsView         = "referral_stats"
	transactionsTable = "referral_transactions"
	profilesTable     = "profiles"
)

type providerRepository struct {
	client *platform.Client
}

func NewProviderRepository(client *platform.Client) repository.ReferralRepository {
	return &providerRepository{client: client}
}

func (r *providerRepository) Stats(ctx context.Context, accessToken, userID string) (*models.Stats, error) {
	var stats models.Stats
	err := r.client.SelectOne(ctx, accessToken, statsView, "",
		platform.Filters{"user_id": "eq." + userID}, &stats)
	if err != nil {
		if platform.IsNotFound(err) {
			// No referrals yet.
			return &models.Stats{}, nil
		}
		return nil, err
	}
	return &stats, nil
}

func (r *providerRepository) Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error) {
	query := url.Values{}
	query.Set("order", "created_at.desc")

	transactions := []models.Transaction{}
	err := r.client.Select(ctx, accessToken, transactionsTable,
		platform.Filters{"referrer_id": "eq." + userID}, query, &transactions)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

type codeRow struct {
	ReferralCode string `json:"referral_code"`
}

func (r *providerRepository) Code(ctx context.Context, accessToken, userID string) (string, error) {
	var row codeRow
	err := r.client.SelectOne(ctx, accessToken, profilesTable, "referral_code",
		platform.Filters{"id": "eq." + userID}, &row)
	if err != nil {
		if platform.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return row.ReferralCode, nil
}
