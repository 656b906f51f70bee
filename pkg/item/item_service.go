package item

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"resq-food-backend/domain"
	"resq-food-backend/entities"
	"resq-food-backend/internal/utils/storage"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ItemService interface {
		AddItem(ctx context.Context, req domain.AddItemRequest, userID string) (domain.ItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest, userID string) error
		DeleteItem(ctx context.Context, id string, userID string) error
		GetItems(ctx context.Context, userID string, page, limit int) ([]domain.ItemResponse, int64, error)
		GetItemByID(ctx context.Context, id string, userID string) (domain.ItemResponse, error)
		UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) (string, error)
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
		CleanExpired(ctx context.Context, userID string) (int, error)
		CleanAllExpired(ctx context.Context) (int, error)
	}

	itemService struct {
		itemRepository ItemRepository
		s3             storage.AwsS3
	}
)

var fileNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.]`)

func NewItemService(itemRepository ItemRepository, s3 storage.AwsS3) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		s3:             s3,
	}
}

func validateCategory(category string) bool {
	for _, c := range domain.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *itemService) AddItem(ctx context.Context, req domain.AddItemRequest, userID string) (domain.ItemResponse, error) {
	if !validateCategory(req.Category) {
		return domain.ItemResponse{}, domain.ErrInvalidCategory
	}
	if req.Price < 0 {
		return domain.ItemResponse{}, domain.ErrNegativePrice
	}
	if req.Stock < 0 {
		return domain.ItemResponse{}, domain.ErrNegativeStock
	}

	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.ItemResponse{}, domain.ErrInvalidExpiry
	}
	if expiryDate.Before(today()) {
		return domain.ItemResponse{}, domain.ErrExpiredItem
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.Item{
		ID:         uuid.New(),
		UserID:     userUUID,
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		Stock:      req.Stock,
		ExpiryDate: expiryDate,
	}

	if err := s.itemRepository.AddItem(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}

	return toItemResponse(item), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest, userID string) error {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrNotItemOwner
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		if !validateCategory(req.Category) {
			return domain.ErrInvalidCategory
		}
		item.Category = req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.ErrNegativePrice
		}
		item.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return domain.ErrNegativeStock
		}
		item.Stock = *req.Stock
	}
	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiry
		}
		if expiryDate.Before(today()) {
			return domain.ErrExpiredItem
		}
		item.ExpiryDate = expiryDate
	}

	return s.itemRepository.UpdateItem(ctx, item)
}

func (s *itemService) DeleteItem(ctx context.Context, id string, userID string) error {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrNotItemOwner
	}

	if item.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.itemRepository.DeleteItem(ctx, id)
}

func (s *itemService) GetItems(ctx context.Context, userID string, page, limit int) ([]domain.ItemResponse, int64, error) {
	items, count, err := s.itemRepository.GetItemsBySeller(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toItemResponse(item))
	}
	return result, count, nil
}

func (s *itemService) GetItemByID(ctx context.Context, id string, userID string) (domain.ItemResponse, error) {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemResponse{}, domain.ErrItemNotFound
		}
		return domain.ItemResponse{}, err
	}

	if item.UserID.String() != userID {
		return domain.ItemResponse{}, domain.ErrNotItemOwner
	}

	return toItemResponse(item), nil
}

func (s *itemService) UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) (string, error) {
	if req.Image.Size > domain.MaxImageSize {
		return "", domain.ErrImageTooLarge
	}

	item, err := s.itemRepository.GetItemByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrItemNotFound
		}
		return "", err
	}

	if item.UserID.String() != userID {
		return "", domain.ErrNotItemOwner
	}

	fileName := fmt.Sprintf("%s_%d_%s",
		userID,
		time.Now().UnixMilli(),
		fileNameSanitizer.ReplaceAllString(req.Image.Filename, "_"),
	)

	imageURL, err := s.s3.UploadFile(fileName, req.Image)
	if err != nil {
		return "", err
	}

	if item.ImageURL != "" {
		oldKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if oldKey != "" {
			_ = s.s3.DeleteFile(oldKey)
		}
	}

	item.ImageURL = imageURL
	if err := s.itemRepository.UpdateItem(ctx, item); err != nil {
		return "", err
	}

	return imageURL, nil
}

func (s *itemService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	items, err := s.itemRepository.GetAllItemsBySeller(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	stats := domain.DashboardStatsResponse{TotalMenus: len(items)}
	perCategory := map[string]float64{}

	for _, item := range items {
		potential := item.Price * domain.DiscountRate * float64(item.Stock)
		stats.TotalStock += item.Stock
		stats.RevenuePotential += potential
		perCategory[item.Category] += potential
	}

	for _, category := range domain.Categories {
		if potential, ok := perCategory[category]; ok {
			stats.ByCategory = append(stats.ByCategory, domain.CategoryPotential{
				Category:  category,
				Potential: potential,
			})
		}
	}

	return stats, nil
}

func (s *itemService) CleanExpired(ctx context.Context, userID string) (int, error) {
	return s.cleanExpired(ctx, userID)
}

func (s *itemService) CleanAllExpired(ctx context.Context) (int, error) {
	return s.cleanExpired(ctx, "")
}

func (s *itemService) cleanExpired(ctx context.Context, userID string) (int, error) {
	expired, err := s.itemRepository.GetExpiredItems(ctx, userID, today())
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, item := range expired {
		// Image removal is best effort, the row goes away regardless.
		if item.ImageURL != "" {
			if objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL); objectKey != "" {
				_ = s.s3.DeleteFile(objectKey)
			}
		}
		ids = append(ids, item.ID)
	}

	if err := s.itemRepository.DeleteItemsByID(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func toItemResponse(item *entities.Item) domain.ItemResponse {
	return domain.ItemResponse{
		ID:         item.ID.String(),
		Name:       item.Name,
		Category:   item.Category,
		Price:      item.Price,
		SalePrice:  item.Price * domain.DiscountRate,
		Stock:      item.Stock,
		ExpiryDate: item.ExpiryDate,
		ImageURL:   item.ImageURL,
		CreatedAt:  item.CreatedAt,
	}
}
