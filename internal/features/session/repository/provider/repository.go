// Package provider implements the profile repository against the hosted
// data API's profiles table.
package provider

import (
	"context"
	"time"

	"arenax-backend/internal/features/session/models"
	"arenax-backend/internal/features/session/repository"
	platform "arenax-backend/internal/platform/provider"
)

const profilesTable = "profiles"

type profileRow struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	IGN          string    `json:"ign"`
	FreeFireID   string    `json:"free_fire_id"`
	Role         string    `json:"role"`
	ReferralCode string    `json:"referral_code"`
	CreatedAt    time.Time `json:"created_at"`
}

type profilePatch struct {
	Username   *string `json:"username,omitempty"`
	IGN        *string `json:"ign,omitempty"`
	FreeFireID *string `json:"free_fire_id,omitempty"`
}

type providerRepository struct {
	client *platform.Client
}

func NewProviderRepository(client *platform.Client) repository.ProfileRepository {
	return &providerRepository{client: client}
}

func (r *providerRepository) GetByID(ctx context.Context, accessToken, userID string) (*models.Profile, error) {
	var row profileRow
	err := r.client.SelectOne(ctx, accessToken, profilesTable,
		"id,username,ign,free_fire_id,role,referral_code,created_at",
		platform.Filters{"id": "eq." + userID}, &row)
	if err != nil {
		if platform.IsNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	role := models.Role(row.Role)
	if !role.Valid() {
		role = models.RoleUser
	}

	return &models.Profile{
		ID:           row.ID,
		Username:     row.Username,
		IGN:          row.IGN,
		FreeFireID:   row.FreeFireID,
		Role:         role,
		ReferralCode: row.ReferralCode,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r *providerRepository) Update(ctx context.Context, accessToken, userID string, update models.ProfileUpdate) error {
	patch := profilePatch{
		Username:   update.Username,
		IGN:        update.IGN,
		FreeFireID: update.FreeFireID,
	}
	return r.client.Update(ctx, accessToken, profilesTable,
		platform.Filters{"id": "eq." + userID}, patch, nil)
}
