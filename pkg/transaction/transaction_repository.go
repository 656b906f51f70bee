package transaction

import (
	"context"
	"resq-food-backend/domain"
	"resq-food-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TransactionRepository interface {
		// CreateOrder reserves stock and inserts the ticket in one database
		// transaction. ok is false when the item has less stock than the
		// requested quantity, in which case nothing is written.
		CreateOrder(ctx context.Context, t *entities.Transaction) (bool, error)

		GetByCode(ctx context.Context, code string) (*entities.Transaction, error)
		GetByID(ctx context.Context, id string) (*entities.Transaction, error)
		GetOrdersByBuyer(ctx context.Context, buyerID string, page, limit int) ([]*entities.Transaction, int64, error)

		// CompleteTransaction flips pending -> completed and credits the
		// seller balance atomically. ok is false when the ticket was no
		// longer pending, in which case nothing is written.
		CompleteTransaction(ctx context.Context, id uuid.UUID, sellerID uuid.UUID, total float64) (bool, error)

		// CancelOrder flips pending -> cancelled and releases the reserved
		// stock atomically. ok is false when the ticket was no longer
		// pending.
		CancelOrder(ctx context.Context, id uuid.UUID) (bool, error)

		MarkPaid(ctx context.Context, id string) error
	}

	transactionRepository struct {
		db *gorm.DB
	}
)

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CreateOrder(ctx context.Context, t *entities.Transaction) (bool, error) {
	ok := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Item{}).
			Where("id = ? AND stock >= ?", t.ItemID, t.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", t.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Not enough stock, abort without writing the ticket.
			return nil
		}

		if err := tx.Create(t).Error; err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

func (r *transactionRepository) GetByCode(ctx context.Context, code string) (*entities.Transaction, error) {
	var t entities.Transaction
	if err := r.db.WithContext(ctx).Where("unique_code = ?", code).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entities.Transaction, error) {
	var t entities.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) GetOrdersByBuyer(ctx context.Context, buyerID string, page, limit int) ([]*entities.Transaction, int64, error) {
	var orders []*entities.Transaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("buyer_id = ?", buyerID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *transactionRepository) CompleteTransaction(ctx context.Context, id uuid.UUID, sellerID uuid.UUID, total float64) (bool, error) {
	ok := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Transaction{}).
			Where("id = ? AND status = ?", id, domain.TransactionPending).
			Update("status", domain.TransactionCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Someone else redeemed it between the check and this update.
			return nil
		}

		if err := tx.Model(&entities.User{}).
			Where("id = ?", sellerID).
			UpdateColumn("balance", gorm.Expr("balance + ?", total)).Error; err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

func (r *transactionRepository) CancelOrder(ctx context.Context, id uuid.UUID) (bool, error) {
	ok := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t entities.Transaction
		if err := tx.Where("id = ?", id).First(&t).Error; err != nil {
			return err
		}

		res := tx.Model(&entities.Transaction{}).
			Where("id = ? AND status = ?", id, domain.TransactionPending).
			Update("status", domain.TransactionCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&entities.Item{}).
			Where("id = ?", t.ItemID).
			UpdateColumn("stock", gorm.Expr("stock + ?", t.Quantity)).Error; err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

func (r *transactionRepository) MarkPaid(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("id = ?", id).
		Update("payment_status", domain.PaymentPaid).Error
}
