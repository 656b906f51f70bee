package wallet

import (
	"context"
	"resq-food-backend/entities"

	"gorm.io/gorm"
)

type (
	WalletRepository interface {
		GetBalance(ctx context.Context, userID string) (float64, error)

		// Withdraw decrements the balance by exactly amount and records an
		// immutable withdrawal entry in one database transaction. ok is
		// false when the balance no longer covers the amount (a concurrent
		// withdrawal won the race), in which case nothing is written.
		Withdraw(ctx context.Context, withdrawal *entities.Withdrawal) (bool, error)

		GetWithdrawals(ctx context.Context, userID string, page, limit int) ([]*entities.Withdrawal, int64, error)
	}

	walletRepository struct {
		db *gorm.DB
	}
)

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetBalance(ctx context.Context, userID string) (float64, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Select("balance").Where("id = ?", userID).First(&user).Error; err != nil {
		return 0, err
	}
	return user.Balance, nil
}

func (r *walletRepository) Withdraw(ctx context.Context, withdrawal *entities.Withdrawal) (bool, error) {
	ok := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.User{}).
			Where("id = ? AND balance >= ?", withdrawal.UserID, withdrawal.Amount).
			UpdateColumn("balance", gorm.Expr("balance - ?", withdrawal.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(withdrawal).Error; err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

func (r *walletRepository) GetWithdrawals(ctx context.Context, userID string, page, limit int) ([]*entities.Withdrawal, int64, error) {
	var withdrawals []*entities.Withdrawal
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Withdrawal{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&withdrawals).Error; err != nil {
		return nil, 0, err
	}

	return withdrawals, count, nil
}
