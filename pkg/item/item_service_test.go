package item

import (
	"context"
	"errors"
	"mime/multipart"
	"resq-food-backend/domain"
	"resq-food-backend/entities"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeItemRepo struct {
	items map[uuid.UUID]*entities.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uuid.UUID]*entities.Item{}}
}

func (r *fakeItemRepo) AddItem(ctx context.Context, item *entities.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetItemByID(ctx context.Context, id string) (*entities.Item, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	item, ok := r.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) UpdateItem(ctx context.Context, item *entities.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) DeleteItem(ctx context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(r.items, itemID)
	return nil
}

func (r *fakeItemRepo) GetItemsBySeller(ctx context.Context, userID string, page, limit int) ([]*entities.Item, int64, error) {
	items, err := r.GetAllItemsBySeller(ctx, userID)
	return items, int64(len(items)), err
}

func (r *fakeItemRepo) GetAllItemsBySeller(ctx context.Context, userID string) ([]*entities.Item, error) {
	var items []*entities.Item
	for _, item := range r.items {
		if item.UserID.String() == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) GetExpiredItems(ctx context.Context, userID string, before time.Time) ([]*entities.Item, error) {
	var expired []*entities.Item
	for _, item := range r.items {
		if userID != "" && item.UserID.String() != userID {
			continue
		}
		if item.ExpiryDate.Before(before) {
			expired = append(expired, item)
		}
	}
	return expired, nil
}

func (r *fakeItemRepo) DeleteItemsByID(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.items, id)
	}
	return nil
}

type fakeS3 struct {
	deleted []string
}

func (s *fakeS3) UploadFile(objectKey string, file *multipart.FileHeader) (string, error) {
	return "https://bucket.s3.region.amazonaws.com/" + objectKey, nil
}

func (s *fakeS3) DeleteFile(objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeS3) GetObjectKeyFromLink(link string) string {
	idx := strings.LastIndex(link, "/")
	if idx < 0 {
		return ""
	}
	return link[idx+1:]
}

func dateIn(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	svc := NewItemService(repo, &fakeS3{})
	sellerID := uuid.New().String()

	res, err := svc.AddItem(ctx, domain.AddItemRequest{
		Name:       "Nasi Padang",
		Category:   domain.CategoryMakananBerat,
		Price:      24000,
		Stock:      4,
		ExpiryDate: dateIn(2),
	}, sellerID)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if res.SalePrice != 12000 {
		t.Fatalf("expected sale price 12000 (half of 24000), got %v", res.SalePrice)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored item, got %d", len(repo.items))
	}
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newFakeItemRepo(), &fakeS3{})
	sellerID := uuid.New().String()

	base := domain.AddItemRequest{
		Name:       "Nasi Padang",
		Category:   domain.CategoryMakananBerat,
		Price:      24000,
		Stock:      4,
		ExpiryDate: dateIn(2),
	}

	cases := []struct {
		name    string
		mutate  func(req *domain.AddItemRequest)
		wantErr error
	}{
		{"unknown category", func(req *domain.AddItemRequest) { req.Category = "Elektronik" }, domain.ErrInvalidCategory},
		{"negative price", func(req *domain.AddItemRequest) { req.Price = -1 }, domain.ErrNegativePrice},
		{"negative stock", func(req *domain.AddItemRequest) { req.Stock = -1 }, domain.ErrNegativeStock},
		{"past expiry", func(req *domain.AddItemRequest) { req.ExpiryDate = dateIn(-1) }, domain.ErrExpiredItem},
		{"malformed expiry", func(req *domain.AddItemRequest) { req.ExpiryDate = "31-12-2026" }, domain.ErrInvalidExpiry},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			if _, err := svc.AddItem(ctx, req, sellerID); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUpdateItemNotOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	svc := NewItemService(repo, &fakeS3{})

	res, err := svc.AddItem(ctx, domain.AddItemRequest{
		Name:       "Klepon",
		Category:   domain.CategoryCemilan,
		Price:      8000,
		Stock:      10,
		ExpiryDate: dateIn(1),
	}, uuid.New().String())
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	newName := "Klepon Pandan"
	err = svc.UpdateItem(ctx, res.ID, domain.UpdateItemRequest{Name: newName}, uuid.New().String())
	if !errors.Is(err, domain.ErrNotItemOwner) {
		t.Fatalf("expected ErrNotItemOwner, got %v", err)
	}
}

func TestGetDashboardStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	svc := NewItemService(repo, &fakeS3{})
	sellerID := uuid.New().String()

	add := func(name, category string, price float64, stock int) {
		if _, err := svc.AddItem(ctx, domain.AddItemRequest{
			Name:       name,
			Category:   category,
			Price:      price,
			Stock:      stock,
			ExpiryDate: dateIn(2),
		}, sellerID); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	add("Nasi Goreng", domain.CategoryMakananBerat, 20000, 3)
	add("Donat", domain.CategoryRotiKue, 10000, 4)
	add("Bolu", domain.CategoryRotiKue, 30000, 1)

	stats, err := svc.GetDashboardStats(ctx, sellerID)
	if err != nil {
		t.Fatalf("dashboard stats: %v", err)
	}

	if stats.TotalMenus != 3 {
		t.Fatalf("expected 3 menus, got %d", stats.TotalMenus)
	}
	if stats.TotalStock != 8 {
		t.Fatalf("expected stock 8, got %d", stats.TotalStock)
	}
	// 3*10000 + 4*5000 + 1*15000 at half price.
	if stats.RevenuePotential != 65000 {
		t.Fatalf("expected potential 65000, got %v", stats.RevenuePotential)
	}

	if len(stats.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %+v", stats.ByCategory)
	}
	if stats.ByCategory[0].Category != domain.CategoryMakananBerat || stats.ByCategory[0].Potential != 30000 {
		t.Fatalf("unexpected first category row: %+v", stats.ByCategory[0])
	}
	if stats.ByCategory[1].Category != domain.CategoryRotiKue || stats.ByCategory[1].Potential != 35000 {
		t.Fatalf("unexpected second category row: %+v", stats.ByCategory[1])
	}
}

func TestCleanExpired(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	s3 := &fakeS3{}
	svc := NewItemService(repo, s3)
	sellerID := uuid.New()

	fresh := &entities.Item{
		ID:         uuid.New(),
		UserID:     sellerID,
		Name:       "Lemper",
		Category:   domain.CategoryCemilan,
		ExpiryDate: time.Now().AddDate(0, 0, 2),
	}
	stale := &entities.Item{
		ID:         uuid.New(),
		UserID:     sellerID,
		Name:       "Risoles",
		Category:   domain.CategoryCemilan,
		ExpiryDate: time.Now().AddDate(0, 0, -2),
		ImageURL:   "https://bucket.s3.region.amazonaws.com/risoles.jpg",
	}
	repo.items[fresh.ID] = fresh
	repo.items[stale.ID] = stale

	removed, err := svc.CleanExpired(ctx, sellerID.String())
	if err != nil {
		t.Fatalf("clean expired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed item, got %d", removed)
	}
	if _, ok := repo.items[stale.ID]; ok {
		t.Fatal("expired item must be deleted")
	}
	if _, ok := repo.items[fresh.ID]; !ok {
		t.Fatal("fresh item must survive the sweep")
	}
	if len(s3.deleted) != 1 || s3.deleted[0] != "risoles.jpg" {
		t.Fatalf("expected the stale image to be deleted, got %v", s3.deleted)
	}
}
