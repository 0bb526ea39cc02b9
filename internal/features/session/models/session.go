package models

import "time"

// Role is the access level stored on a profile row.
type Role string

const (
	RoleUser              Role = "user"
	RoleAdmin             Role = "admin"
	RoleTournamentManager Role = "tournament_manager"
	RolePaymentProcessor  Role = "payment_processor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleTournamentManager, RolePaymentProcessor:
		return true
	}
	return false
}

// CanManageTournaments reports back-office tournament access.
func (r Role) CanManageTournaments() bool {
	return r == RoleAdmin || r == RoleTournamentManager
}

// CanProcessPayments reports back-office withdrawal access.
func (r Role) CanProcessPayments() bool {
	return r == RoleAdmin || r == RolePaymentProcessor
}

// Identity is the provider-owned authenticated user record.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile extends an Identity with gaming attributes, keyed 1:1 by its id.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	IGN          string    `json:"ign"`
	FreeFireID   string    `json:"free_fire_id"`
	Role         Role      `json:"role"`
	ReferralCode string    `json:"referral_code"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlaceholderProfile synthesizes a degraded profile for an identity whose
// row is missing, so a half-provisioned account still gets a usable session.
func PlaceholderProfile(identity Identity) Profile {
	return Profile{
		ID:         identity.ID,
		Email:      identity.Email,
		Username:   "New User",
		IGN:        "Update Profile",
		FreeFireID: "Update Profile",
		Role:       RoleUser,
		CreatedAt:  identity.CreatedAt,
	}
}

// State is the session lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is an immutable view of a session, replaced as a whole on every
// mutation. Identity and Profile are nil unless authenticated.
type Snapshot struct {
	State    State
	Identity *Identity
	Profile  *Profile
}

// IsAuthenticated is true iff a resolved identity is present; profile
// resolution failures do not revoke authentication.
func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Identity != nil
}

// IsLoading reports whether restoration is still in flight.
func (s Snapshot) IsLoading() bool {
	return s.State == StateUninitialized || s.State == StateLoading
}

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Username   *string `json:"username,omitempty"`
	IGN        *string `json:"ign,omitempty"`
	FreeFireID *string `json:"free_fire_id,omitempty"`
}
