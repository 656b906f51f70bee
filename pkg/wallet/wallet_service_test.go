package wallet

import (
	"context"
	"errors"
	"resq-food-backend/domain"
	"resq-food-backend/entities"
	"testing"

	"github.com/google/uuid"
)

type memWalletRepo struct {
	balances    map[string]float64
	withdrawals []*entities.Withdrawal
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{balances: map[string]float64{}}
}

func (r *memWalletRepo) GetBalance(ctx context.Context, userID string) (float64, error) {
	return r.balances[userID], nil
}

func (r *memWalletRepo) Withdraw(ctx context.Context, withdrawal *entities.Withdrawal) (bool, error) {
	userID := withdrawal.UserID.String()
	if r.balances[userID] < withdrawal.Amount {
		return false, nil
	}
	r.balances[userID] -= withdrawal.Amount
	r.withdrawals = append(r.withdrawals, withdrawal)
	return true, nil
}

func (r *memWalletRepo) GetWithdrawals(ctx context.Context, userID string, page, limit int) ([]*entities.Withdrawal, int64, error) {
	var result []*entities.Withdrawal
	for _, w := range r.withdrawals {
		if w.UserID.String() == userID {
			result = append(result, w)
		}
	}
	return result, int64(len(result)), nil
}

func TestWithdrawEmptiesBalance(t *testing.T) {
	ctx := context.Background()
	repo := newMemWalletRepo()
	svc := NewWalletService(repo)

	sellerID := uuid.New().String()
	repo.balances[sellerID] = 30000

	res, err := svc.Withdraw(ctx, sellerID)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if res.Amount != 30000 {
		t.Fatalf("expected payout of 30000, got %v", res.Amount)
	}
	if res.Balance != 0 {
		t.Fatalf("expected remaining balance 0, got %v", res.Balance)
	}

	wallet, _, err := svc.GetWallet(ctx, sellerID, 1, 10)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if wallet.Balance != 0 {
		t.Fatalf("expected balance 0 after withdrawal, got %v", wallet.Balance)
	}
	if len(wallet.Withdrawals) != 1 || wallet.Withdrawals[0].Amount != 30000 {
		t.Fatalf("expected one withdrawal of 30000, got %+v", wallet.Withdrawals)
	}
}

func TestWithdrawEmptyBalance(t *testing.T) {
	ctx := context.Background()
	repo := newMemWalletRepo()
	svc := NewWalletService(repo)

	_, err := svc.Withdraw(ctx, uuid.New().String())
	if !errors.Is(err, domain.ErrEmptyBalance) {
		t.Fatalf("expected ErrEmptyBalance, got %v", err)
	}
	if len(repo.withdrawals) != 0 {
		t.Fatalf("no withdrawal record expected, got %d", len(repo.withdrawals))
	}
}

func TestWithdrawKeepsConcurrentCredit(t *testing.T) {
	ctx := context.Background()
	repo := newMemWalletRepo()
	svc := NewWalletService(repo)

	sellerID := uuid.New().String()
	repo.balances[sellerID] = 30000

	res, err := svc.Withdraw(ctx, sellerID)
	if err != nil {
		t.Fatalf("first withdraw: %v", err)
	}
	if res.Amount != 30000 {
		t.Fatalf("expected first payout of 30000, got %v", res.Amount)
	}

	// A redemption settles between withdrawals; it must survive the payout.
	repo.balances[sellerID] += 15000

	res, err = svc.Withdraw(ctx, sellerID)
	if err != nil {
		t.Fatalf("second withdraw: %v", err)
	}
	if res.Amount != 15000 {
		t.Fatalf("expected second payout of 15000, got %v", res.Amount)
	}

	total := 0.0
	for _, w := range repo.withdrawals {
		total += w.Amount
	}
	if total != 45000 {
		t.Fatalf("expected 45000 paid out in total, got %v", total)
	}
}
