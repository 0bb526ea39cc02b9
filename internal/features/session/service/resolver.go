package service

import (
	"context"
	"errors"

	"arenax-backend/internal/features/session/models"
	"arenax-backend/internal/features/session/repository"
)

// ProfileResolver maps an identity to its profile. The contract is fixed
// here once instead of being re-derived per call site: a missing row yields
// a degraded placeholder (never nil, never an error), while a transport or
// provider failure propagates so the caller can retry.
type ProfileResolver struct {
	repo repository.ProfileRepository
}

func NewProfileResolver(repo repository.ProfileRepository) *ProfileResolver {
	return &ProfileResolver{repo: repo}
}

func (r *ProfileResolver) Resolve(ctx context.Context, accessToken string, identity models.Identity) (models.Profile, error) {
	profile, err := r.repo.GetByID(ctx, accessToken, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.PlaceholderProfile(identity), nil
		}
		return models.Profile{}, err
	}

	// Rows carry no email; the identity is authoritative for it.
	profile.Email = identity.Email
	if profile.Username == "" {
		profile.Username = "Gamer"
	}
	if profile.Role == "" {
		profile.Role = models.RoleUser
	}
	return *profile, nil
}
