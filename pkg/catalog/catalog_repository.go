package catalog

import (
	"context"
	"resq-food-backend/domain"
	"time"

	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		GetDiscountedItems(ctx context.Context, today time.Time) ([]domain.DiscountedItem, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// GetDiscountedItems loads the denormalized catalog view: every listing of
// a store, joined with the store fields buyers need, minus anything whose
// expiry date has already passed.
func (r *catalogRepository) GetDiscountedItems(ctx context.Context, today time.Time) ([]domain.DiscountedItem, error) {
	var rows []domain.DiscountedItem

	err := r.db.WithContext(ctx).
		Table("items").
		Select(`items.id, items.user_id, items.name, items.category, items.price,
			items.stock, items.expiry_date, items.image_url,
			users.store_name, users.whatsapp_number, users.opening_hour,
			users.closing_hour, users.latitude, users.longitude`).
		Joins("JOIN users ON users.id = items.user_id").
		Where("users.store_name <> ''").
		Where("items.expiry_date >= ?", today).
		Order("items.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
