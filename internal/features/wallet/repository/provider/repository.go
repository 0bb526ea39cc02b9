// Package provider implements the wallet repository against the hosted
// data API.
package provider

import (
	"context"
	"net/url"
	"strings"

	"arenax-backend/internal/features/wallet/models"
	"arenax-backend/internal/features/wallet/repository"
	platform "arenax-backend/internal/platform/provider"
)

const (
	walletsTable        = "wallets"
	transactionsTable   = "transactions"
	withdrawalsTable    = "withdrawals"
	paymentMethodsTable = "payment_methods"
	userStatsView       = "user_stats"
)

type walletRow struct {
	DepositBalance   int64 `json:"deposit_balance"`
	WinningsBalance  int64 `json:"winnings_balance"`
	IsBalanceBlocked bool  `json:"is_balance_blocked"`
}

type providerRepository struct {
	client *platform.Client
}

func NewProviderRepository(client *platform.Client) repository.WalletRepository {
	return &providerRepository{client: client}
}

func (r *providerRepository) Balance(ctx context.Context, accessToken, userID string) (*models.Balance, error) {
	var row walletRow
	err := r.client.SelectOne(ctx, accessToken, walletsTable,
		"deposit_balance,winnings_balance,is_balance_blocked",
		platform.Filters{"user_id": "eq." + userID}, &row)
	if err != nil {
		if platform.IsNotFound(err) {
			// Wallet rows are trigger-created; a missing row is an empty wallet.
			return &models.Balance{}, nil
		}
		return nil, err
	}

	return &models.Balance{
		Deposit:   row.DepositBalance,
		Winnings:  row.WinningsBalance,
		Total:     row.DepositBalance + row.WinningsBalance,
		IsBlocked: row.IsBalanceBlocked,
	}, nil
}

func (r *providerRepository) Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error) {
	query := url.Values{}
	query.Set("order", "created_at.desc")
	query.Set("limit", "100")

	transactions := []models.Transaction{}
	err := r.client.Select(ctx, accessToken, transactionsTable,
		platform.Filters{"user_id": "eq." + userID}, query, &transactions)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

type withdrawalArgs struct {
	Amount int64  `json:"p_amount"`
	Method string `json:"p_payment_method"`
}

func (r *providerRepository) RequestWithdrawal(ctx context.Context, accessToken string, amount int64, method models.PaymentMethod) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := r.client.RPC(ctx, accessToken, "request_withdrawal",
		withdrawalArgs{Amount: amount, Method: string(method)}, &withdrawal)
	if err != nil {
		return nil, mapWithdrawalError(err)
	}
	return &withdrawal, nil
}

func mapWithdrawalError(err error) error {
	apiErr, ok := platform.AsAPIError(err)
	if !ok {
		return err
	}
	msg := strings.ToLower(apiErr.Message)
	switch {
	case strings.Contains(msg, "insufficient"):
		return repository.ErrInsufficientWinnings
	case strings.Contains(msg, "blocked"):
		return repository.ErrBalanceBlocked
	}
	return err
}

type payoutRow struct {
	UserID        string `json:"user_id"`
	UPI1          string `json:"upi1"`
	UPI2          string `json:"upi2"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	IsLocked      bool   `json:"is_locked"`
}

func (r *providerRepository) PaymentMethods(ctx context.Context, accessToken, userID string) (*models.PayoutDetails, error) {
	var row payoutRow
	err := r.client.SelectOne(ctx, accessToken, paymentMethodsTable, "",
		platform.Filters{"user_id": "eq." + userID}, &row)
	if err != nil {
		if platform.IsNotFound(err) {
			// Nothing saved yet: empty and unlocked.
			return &models.PayoutDetails{}, nil
		}
		return nil, err
	}
	return &models.PayoutDetails{
		UPI1:          row.UPI1,
		UPI2:          row.UPI2,
		BankName:      row.BankName,
		AccountNumber: row.AccountNumber,
		IFSCCode:      row.IFSCCode,
		IsLocked:      row.IsLocked,
	}, nil
}

func (r *providerRepository) SavePaymentMethods(ctx context.Context, accessToken, userID string, details models.PayoutDetails) error {
	row := payoutRow{
		UserID:        userID,
		UPI1:          details.UPI1,
		UPI2:          details.UPI2,
		BankName:      details.BankName,
		AccountNumber: details.AccountNumber,
		IFSCCode:      details.IFSCCode,
		IsLocked:      details.IsLocked,
	}

	updated := []struct {
		UserID string `json:"user_id"`
	}{}
	err := r.client.Update(ctx, accessToken, paymentMethodsTable,
		platform.Filters{"user_id": "eq." + userID}, row, &updated)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return r.client.Insert(ctx, accessToken, paymentMethodsTable, row, nil)
	}
	return nil
}

func (r *providerRepository) UserStats(ctx context.Context, accessToken, userID string) (*models.UserStats, error) {
	var stats models.UserStats
	err := r.client.SelectOne(ctx, accessToken, userStatsView, "",
		platform.Filters{"user_id": "eq." + userID}, &stats)
	if err != nil {
		if platform.IsNotFound(err) {
			return &models.UserStats{}, nil
		}
		return nil, err
	}
	return &stats, nil
}

func (r *providerRepository) Withdrawals(ctx context.Context, accessToken, userID string) ([]models.Withdrawal, error) {
	query := url.Values{}
	query.Set("order", "requested_at.desc")

	withdrawals := []models.Withdrawal{}
	err := r.client.Select(ctx, accessToken, withdrawalsTable,
		platform.Filters{"user_id": "eq." + userID}, query, &withdrawals)
	if err != nil {
		return nil, err
	}
	return withdrawals, nil
}
