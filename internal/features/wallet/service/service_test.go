package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/features/wallet/models"
	"arenax-backend/internal/features/wallet/service"
)

type fakeWalletRepo struct {
	balance    models.Balance
	balanceErr error

	requested     bool
	requestedAmt  int64
	withdrawal    models.Withdrawal
	withdrawalErr error

	payout models.PayoutDetails
	saved  *models.PayoutDetails
	stats  models.UserStats
}

func (f *fakeWalletRepo) Balance(ctx context.Context, accessToken, userID string) (*models.Balance, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	b := f.balance
	return &b, nil
}

func (f *fakeWalletRepo) Transactions(ctx context.Context, accessToken, userID string) ([]models.Transaction, error) {
	return nil, nil
}

func (f *fakeWalletRepo) RequestWithdrawal(ctx context.Context, accessToken string, amount int64, method models.PaymentMethod) (*models.Withdrawal, error) {
	f.requested = true
	f.requestedAmt = amount
	if f.withdrawalErr != nil {
		return nil, f.withdrawalErr
	}
	w := f.withdrawal
	return &w, nil
}

func (f *fakeWalletRepo) Withdrawals(ctx context.Context, accessToken, userID string) ([]models.Withdrawal, error) {
	return nil, nil
}

func (f *fakeWalletRepo) PaymentMethods(ctx context.Context, accessToken, userID string) (*models.PayoutDetails, error) {
	p := f.payout
	return &p, nil
}

func (f *fakeWalletRepo) SavePaymentMethods(ctx context.Context, accessToken, userID string, details models.PayoutDetails) error {
	f.saved = &details
	return nil
}

func (f *fakeWalletRepo) UserStats(ctx context.Context, accessToken, userID string) (*models.UserStats, error) {
	s := f.stats
	return &s, nil
}

func TestWithdrawValidation(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		method  models.PaymentMethod
		balance models.Balance
		wantErr error
	}{
		{"unknown method", 600, "paypal", models.Balance{Winnings: 1000}, service.ErrInvalidMethod},
		{"below minimum", 100, models.MethodUPI1, models.Balance{Winnings: 1000}, service.ErrBelowMinimum},
		{"blocked balance", 600, models.MethodUPI1, models.Balance{Winnings: 1000, IsBlocked: true}, service.ErrBlocked},
		{"insufficient winnings", 600, models.MethodBank, models.Balance{Winnings: 500}, service.ErrInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeWalletRepo{balance: tt.balance}
			svc := service.NewWalletService(repo, 500)

			_, err := svc.Withdraw(context.Background(), "token", "u1", tt.amount, tt.method)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, repo.requested)
		})
	}
}

func TestWithdrawFilesRequest(t *testing.T) {
	repo := &fakeWalletRepo{
		balance:    models.Balance{Winnings: 1000},
		withdrawal: models.Withdrawal{ID: "w1", Amount: 600},
	}
	svc := service.NewWalletService(repo, 500)

	w, err := svc.Withdraw(context.Background(), "token", "u1", 600, models.MethodUPI1)
	require.NoError(t, err)
	assert.True(t, repo.requested)
	assert.EqualValues(t, 600, repo.requestedAmt)
	assert.Equal(t, "w1", w.ID)
}

func TestSavePaymentMethodsValidation(t *testing.T) {
	tests := []struct {
		name    string
		current models.PayoutDetails
		details models.PayoutDetails
		wantErr error
	}{
		{"already locked", models.PayoutDetails{IsLocked: true}, models.PayoutDetails{UPI1: "a@upi"}, service.ErrMethodsLocked},
		{"nothing filled", models.PayoutDetails{}, models.PayoutDetails{}, service.ErrIncompleteMethods},
		{"partial bank", models.PayoutDetails{}, models.PayoutDetails{BankName: "Bank", AccountNumber: "123"}, service.ErrIncompleteMethods},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeWalletRepo{payout: tt.current}
			svc := service.NewWalletService(repo, 500)

			err := svc.SavePaymentMethods(context.Background(), "token", "u1", tt.details)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.saved)
		})
	}
}

func TestSavePaymentMethodsLocksOnSave(t *testing.T) {
	repo := &fakeWalletRepo{}
	svc := service.NewWalletService(repo, 500)

	err := svc.SavePaymentMethods(context.Background(), "token", "u1", models.PayoutDetails{UPI1: "a@upi"})
	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.True(t, repo.saved.IsLocked)
	assert.Equal(t, "a@upi", repo.saved.UPI1)
}

func TestSavePaymentMethodsAcceptsFullBank(t *testing.T) {
	repo := &fakeWalletRepo{}
	svc := service.NewWalletService(repo, 500)

	err := svc.SavePaymentMethods(context.Background(), "token", "u1", models.PayoutDetails{
		BankName:      "Bank",
		AccountNumber: "123456",
		IFSCCode:      "BANK0001",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.True(t, repo.saved.IsLocked)
}

func TestWithdrawAtExactMinimum(t *testing.T) {
	repo := &fakeWalletRepo{
		balance:    models.Balance{Winnings: 500},
		withdrawal: models.Withdrawal{ID: "w1", Amount: 500},
	}
	svc := service.NewWalletService(repo, 500)

	_, err := svc.Withdraw(context.Background(), "token", "u1", 500, models.MethodBank)
	require.NoError(t, err)
	assert.True(t, repo.requested)
}
