package repository

import (
	"context"
	"errors"

	"arenax-backend/internal/features/wallet/models"
)

var (
	// ErrInsufficientWinnings is the provider-authoritative balance check
	// failing inside the withdrawal RPC.
	ErrInsufficientWinnings = errors.New("insufficient winnings balance")
	ErrBalanceBlocked       = errors.New("balance is blocked")
)

// WalletRepository reads wallet state and files withdrawal requests. The
// withdrawal is an RPC so the balance check and the hold happen in one
// server-side transaction.
type WalletRepository interface {
	Balance(ctx context.Context, accessToken, userID string) (*models.Balance, error)
	Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error)
	RequestWithdrawal(ctx context.Context, accessToken string, amount int64, method models.PaymentMethod) (*models.Withdrawal, error)
	Withdrawals(ctx context.Context, accessToken, userID string) ([]models.Withdrawal, error)

	PaymentMethods(ctx context.Context, accessToken, userID string) (*models.PayoutDetails, error)
	SavePaymentMethods(ctx context.Context, accessToken, userID string, details models.PayoutDetails) error
	UserStats(ctx context.Context, accessToken, userID string) (*models.UserStats, error)
}
