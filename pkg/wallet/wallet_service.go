package wallet

import (
	"context"
	"resq-food-backend/domain"
	"resq-food-backend/entities"

	"github.com/google/uuid"
)

type (
	WalletService interface {
		GetWallet(ctx context.Context, userID string, page, limit int) (domain.WalletResponse, int64, error)
		Withdraw(ctx context.Context, userID string) (domain.WithdrawResponse, error)
	}

	walletService struct {
		walletRepository WalletRepository
	}
)

func NewWalletService(walletRepository WalletRepository) WalletService {
	return &walletService{walletRepository: walletRepository}
}

func (s *walletService) GetWallet(ctx context.Context, userID string, page, limit int) (domain.WalletResponse, int64, error) {
	balance, err := s.walletRepository.GetBalance(ctx, userID)
	if err != nil {
		return domain.WalletResponse{}, 0, err
	}

	withdrawals, count, err := s.walletRepository.GetWithdrawals(ctx, userID, page, limit)
	if err != nil {
		return domain.WalletResponse{}, 0, err
	}

	res := domain.WalletResponse{
		Balance:     balance,
		Withdrawals: make([]domain.WithdrawalResponse, 0, len(withdrawals)),
	}
	for _, w := range withdrawals {
		res.Withdrawals = append(res.Withdrawals, domain.WithdrawalResponse{
			ID:        w.ID.String(),
			Amount:    w.Amount,
			CreatedAt: w.CreatedAt,
		})
	}

	return res, count, nil
}

// Withdraw pays out the entire balance as read at call time. The decrement
// is by that exact amount, so a redemption credit landing concurrently stays
// on the balance instead of being wiped by a reset to zero.
func (s *walletService) Withdraw(ctx context.Context, userID string) (domain.WithdrawResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.WithdrawResponse{}, domain.ErrParseUUID
	}

	balance, err := s.walletRepository.GetBalance(ctx, userID)
	if err != nil {
		return domain.WithdrawResponse{}, err
	}
	if balance <= 0 {
		return domain.WithdrawResponse{}, domain.ErrEmptyBalance
	}

	withdrawal := &entities.Withdrawal{
		ID:     uuid.New(),
		UserID: userUUID,
		Amount: balance,
	}

	ok, err := s.walletRepository.Withdraw(ctx, withdrawal)
	if err != nil {
		return domain.WithdrawResponse{}, err
	}
	if !ok {
		return domain.WithdrawResponse{}, domain.ErrWithdrawRace
	}

	remaining, err := s.walletRepository.GetBalance(ctx, userID)
	if err != nil {
		return domain.WithdrawResponse{}, err
	}

	return domain.WithdrawResponse{
		Amount:  withdrawal.Amount,
		Balance: remaining,
	}, nil
}
