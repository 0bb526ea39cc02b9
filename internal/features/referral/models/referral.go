package models

import "time"

// Stats aggregates a user's referral earnings.
type Stats struct {
	TotalReferrals        int   `json:"total_referrals"`
	TotalReferralDeposits int64 `json:"total_referral_deposits"`
	TotalReferralWinnings int64 `json:"total_referral_winnings"`
	TotalEarnings         int64 `json:"total_earnings"`
	PendingEarnings       int64 `json:"pending_earnings"`
}

type BonusType string

const (
	MemberBonus  BonusType = "member_bonus"
	WinningBonus BonusType = "winning_bonus"
)

// Transaction is one referral bonus credit.
type Transaction struct {
	ID               string    `json:"id"`
	ReferredUserID   string    `json:"referred_user_id"`
	ReferredUsername string    `json:"referred_username"`
	Type             BonusType `json:"type"`
	Amount           int64     `json:"amount"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Terms are the published referral program conditions.
type Terms struct {
	MemberBonus     int64 `json:"member_bonus"`
	WinningBonus    int64 `json:"winning_bonus"`
	MinimumWithdraw int64 `json:"minimum_withdraw"`
}
