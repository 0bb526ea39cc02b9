package service

import (
	"context"
	"errors"

	"arenax-backend/internal/features/wallet/models"
	"arenax-backend/internal/features/wallet/repository"
)

var (
	ErrBelowMinimum      = errors.New("amount is below the minimum withdrawal")
	ErrInvalidMethod     = errors.New("unknown payment method")
	ErrMethodsLocked     = errors.New("payment methods are locked")
	ErrIncompleteMethods = errors.New("incomplete payment details")
	ErrBlocked           = repository.ErrBalanceBlocked
	ErrInsufficient      = repository.ErrInsufficientWinnings
)

type WalletService interface {
	Balance(ctx context.Context, accessToken, userID string) (*models.Balance, error)
	Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error)
	Withdraw(ctx context.Context, accessToken, userID string, amount int64, method models.PaymentMethod) (*models.Withdrawal, error)
	Withdrawals(ctx context.Context, accessToken, userID string) ([]models.Withdrawal, error)

	PaymentMethods(ctx context.Context, accessToken, userID string) (*models.PayoutDetails, error)
	SavePaymentMethods(ctx context.Context, accessToken, userID string, details models.PayoutDetails) error
	UserStats(ctx context.Context, accessToken, userID string) (*models.UserStats, error)
}

type walletService struct {
	repo        repository.WalletRepository
	minWithdraw int64
}

func NewWalletService(repo repository.WalletRepository, minWithdraw int64) WalletService {
	return &walletService{repo: repo, minWithdraw: minWithdraw}
}

func (s *walletService) Balance(ctx context.Context, accessToken, userID string) (*models.Balance, error) {
	return s.repo.Balance(ctx, accessToken, userID)
}

func (s *walletService) Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error) {
	return s.repo.Transactions(ctx, accessToken, userID)
}

// Withdraw validates the request locally, then files it through the
// provider RPC which re-checks the balance authoritatively.
func (s *walletService) Withdraw(ctx context.Context, accessToken, userID string, amount int64, method models.PaymentMethod) (*models.Withdrawal, error) {
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}
	if amount < s.minWithdraw {
		return nil, ErrBelowMinimum
	}

	balance, err := s.repo.Balance(ctx, accessToken, userID)
	if err != nil {
		return nil, err
	}
	if balance.IsBlocked {
		return nil, ErrBlocked
	}
	if balance.Winnings < amount {
		return nil, ErrInsufficient
	}

	return s.repo.RequestWithdrawal(ctx, accessToken, amount, method)
}

func (s *walletService) Withdrawals(ctx context.Context, accessToken, userID string) ([]models.Withdrawal, error) {
	return s.repo.Withdrawals(ctx, accessToken, userID)
}

func (s *walletService) PaymentMethods(ctx context.Context, accessToken, userID string) (*models.PayoutDetails, error) {
	return s.repo.PaymentMethods(ctx, accessToken, userID)
}

// SavePaymentMethods stores the payout destinations and locks them. A save
// needs at least one UPI or a complete bank account; a partial bank entry
// is rejected rather than silently dropped.
func (s *walletService) SavePaymentMethods(ctx context.Context, accessToken, userID string, details models.PayoutDetails) error {
	current, err := s.repo.PaymentMethods(ctx, accessToken, userID)
	if err != nil {
		return err
	}
	if current.IsLocked {
		return ErrMethodsLocked
	}

	hasUPI := details.UPI1 != "" || details.UPI2 != ""
	hasPartialBank := details.BankName != "" || details.AccountNumber != "" || details.IFSCCode != ""
	hasFullBank := details.BankName != "" && details.AccountNumber != "" && details.IFSCCode != ""
	if !hasUPI && !hasPartialBank {
		return ErrIncompleteMethods
	}
	if hasPartialBank && !hasFullBank {
		return ErrIncompleteMethods
	}

	details.IsLocked = true
	return s.repo.SavePaymentMethods(ctx, accessToken, userID, details)
}

func (s *walletService) UserStats(ctx context.Context, accessToken, userID string) (*models.UserStats, error) {
	return s.repo.UserStats(ctx, accessToken, userID)
}
