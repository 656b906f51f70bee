package item

import (
	"context"
	"resq-food-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ItemRepository interface {
		AddItem(ctx context.Context, item *entities.Item) error
		GetItemByID(ctx context.Context, id string) (*entities.Item, error)
		UpdateItem(ctx context.Context, item *entities.Item) error
		DeleteItem(ctx context.Context, id string) error
		GetItemsBySeller(ctx context.Context, userID string, page, limit int) ([]*entities.Item, int64, error)
		GetAllItemsBySeller(ctx context.Context, userID string) ([]*entities.Item, error)
		GetExpiredItems(ctx context.Context, userID string, before time.Time) ([]*entities.Item, error)
		DeleteItemsByID(ctx context.Context, ids []uuid.UUID) error
	}

	itemRepository struct {
		db *gorm.DB
	}
)

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) AddItem(ctx context.Context, item *entities.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetItemByID(ctx context.Context, id string) (*entities.Item, error) {
	var item entities.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, item *entities.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Item{}).Error
}

func (r *itemRepository) GetItemsBySeller(ctx context.Context, userID string, page, limit int) ([]*entities.Item, int64, error) {
	var items []*entities.Item
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.Item{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *itemRepository) GetAllItemsBySeller(ctx context.Context, userID string) ([]*entities.Item, error) {
	var items []*entities.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetExpiredItems returns items whose expiry date is before the given time.
// An empty userID matches every seller.
func (r *itemRepository) GetExpiredItems(ctx context.Context, userID string, before time.Time) ([]*entities.Item, error) {
	var items []*entities.Item

	query := r.db.WithContext(ctx).Where("expiry_date < ?", before)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) DeleteItemsByID(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entities.Item{}).Error
}
