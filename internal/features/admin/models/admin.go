package models

import "time"

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers         int   `json:"total_users"`
	ActiveTournaments  int   `json:"active_tournaments"`
	TotalDeposits      int64 `json:"total_deposits"`
	TotalWithdrawals   int64 `json:"total_withdrawals"`
	PendingWithdrawals int   `json:"pending_withdrawals"`
	BlockedBalances    int   `json:"blocked_balances"`
}

// User is the admin view of a player account.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	IGN            string    `json:"ign"`
	FreeFireID     string    `json:"free_fire_id"`
	Role           string    `json:"role"`
	DepositBalance int64     `json:"deposit_balance"`
	WinningBalance int64     `json:"winning_balance"`
	IsBlocked      bool      `json:"is_blocked"`
	CreatedAt      time.Time `json:"created_at"`
}

// TeamMember is a staff account with an elevated role.
type TeamMember struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingWithdrawal is a withdrawal awaiting review.
type PendingWithdrawal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	RequestedAt   time.Time `json:"requested_at"`
}

// ResultEntry is one player's declared outcome for a completed match.
type ResultEntry struct {
	UserID      string `json:"user_id"`
	Position    int    `json:"position"`
	Kills       int    `json:"kills"`
	WinningType string `json:"winning_type"`
	Prize       int64  `json:"prize"`
}
