package models

import "time"

// Balance splits funds the way the product does: deposits can only be
// spent on entry fees, winnings can be withdrawn.
type Balance struct {
	Deposit  int64 `json:"deposit"`
	Winnings int64 `json:"winnings"`
	Total    int64 `json:"total"`

	IsBlocked bool `json:"is_blocked"`
}

type TransactionType string

const (
	TxDeposit       TransactionType = "deposit"
	TxWithdraw      TransactionType = "withdraw"
	TxMatchFee      TransactionType = "match_fee"
	TxMatchWin      TransactionType = "match_win"
	TxReferralBonus TransactionType = "referral_bonus"
)

type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentMethod is a stored payout destination.
type PaymentMethod string

const (
	MethodUPI1 PaymentMethod = "upi1"
	MethodUPI2 PaymentMethod = "upi2"
	MethodBank PaymentMethod = "bank"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodUPI1, MethodUPI2, MethodBank:
		return true
	}
	return false
}

// PayoutDetails are the stored payout destinations. They lock on first
// save; changing them afterwards goes through support.
type PayoutDetails struct {
	UPI1          string `json:"upi1"`
	UPI2          string `json:"upi2"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	IsLocked      bool   `json:"is_locked"`
}

// UserStats aggregates a player's financial and match totals.
type UserStats struct {
	TotalDeposit  int64 `json:"total_deposit"`
	TotalWithdraw int64 `json:"total_withdraw"`
	TotalWinnings int64 `json:"total_winnings"`
	TotalLosses   int64 `json:"total_losses"`
	MatchesPlayed int   `json:"matches_played"`
	MatchesWon    int   `json:"matches_won"`
}

type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalApproved  WithdrawalStatus = "approved"
	WithdrawalRejected  WithdrawalStatus = "rejected"
	WithdrawalProcessed WithdrawalStatus = "processed"
)

// Withdrawal is a payout request and its processing trail.
type Withdrawal struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	Amount        int64            `json:"amount"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	Status        WithdrawalStatus `json:"status"`
	AdminNote     string           `json:"admin_note,omitempty"`
	RequestedAt   time.Time        `json:"requested_at"`
	ProcessedAt   *time.Time       `json:"processed_at,omitempty"`
}
