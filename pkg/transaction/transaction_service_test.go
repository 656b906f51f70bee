package transaction

import (
	"context"
	"errors"
	"regexp"
	"resq-food-backend/domain"
	"resq-food-backend/entities"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memStore struct {
	items    map[uuid.UUID]*entities.Item
	tickets  map[uuid.UUID]*entities.Transaction
	balances map[uuid.UUID]float64
}

func newMemStore() *memStore {
	return &memStore{
		items:    map[uuid.UUID]*entities.Item{},
		tickets:  map[uuid.UUID]*entities.Transaction{},
		balances: map[uuid.UUID]float64{},
	}
}

type memItemRepo struct{ store *memStore }

func (r *memItemRepo) AddItem(ctx context.Context, item *entities.Item) error {
	r.store.items[item.ID] = item
	return nil
}

func (r *memItemRepo) GetItemByID(ctx context.Context, id string) (*entities.Item, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	item, ok := r.store.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *memItemRepo) UpdateItem(ctx context.Context, item *entities.Item) error {
	r.store.items[item.ID] = item
	return nil
}

func (r *memItemRepo) DeleteItem(ctx context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(r.store.items, itemID)
	return nil
}

func (r *memItemRepo) GetItemsBySeller(ctx context.Context, userID string, page, limit int) ([]*entities.Item, int64, error) {
	return nil, 0, nil
}

func (r *memItemRepo) GetAllItemsBySeller(ctx context.Context, userID string) ([]*entities.Item, error) {
	return nil, nil
}

func (r *memItemRepo) GetExpiredItems(ctx context.Context, userID string, before time.Time) ([]*entities.Item, error) {
	return nil, nil
}

func (r *memItemRepo) DeleteItemsByID(ctx context.Context, ids []uuid.UUID) error {
	return nil
}

type memTransactionRepo struct{ store *memStore }

func (r *memTransactionRepo) CreateOrder(ctx context.Context, t *entities.Transaction) (bool, error) {
	item, ok := r.store.items[t.ItemID]
	if !ok || item.Stock < t.Quantity {
		return false, nil
	}
	item.Stock -= t.Quantity
	clone := *t
	clone.CreatedAt = time.Now()
	r.store.tickets[t.ID] = &clone
	return true, nil
}

func (r *memTransactionRepo) GetByCode(ctx context.Context, code string) (*entities.Transaction, error) {
	for _, t := range r.store.tickets {
		if t.UniqueCode == code {
			clone := *t
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTransactionRepo) GetByID(ctx context.Context, id string) (*entities.Transaction, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	t, ok := r.store.tickets[ticketID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTransactionRepo) GetOrdersByBuyer(ctx context.Context, buyerID string, page, limit int) ([]*entities.Transaction, int64, error) {
	var orders []*entities.Transaction
	for _, t := range r.store.tickets {
		if t.BuyerID.String() == buyerID {
			clone := *t
			orders = append(orders, &clone)
		}
	}
	return orders, int64(len(orders)), nil
}

func (r *memTransactionRepo) CompleteTransaction(ctx context.Context, id uuid.UUID, sellerID uuid.UUID, total float64) (bool, error) {
	t, ok := r.store.tickets[id]
	if !ok || t.Status != domain.TransactionPending {
		return false, nil
	}
	t.Status = domain.TransactionCompleted
	r.store.balances[sellerID] += total
	return true, nil
}

func (r *memTransactionRepo) CancelOrder(ctx context.Context, id uuid.UUID) (bool, error) {
	t, ok := r.store.tickets[id]
	if !ok || t.Status != domain.TransactionPending {
		return false, nil
	}
	t.Status = domain.TransactionCancelled
	if item, ok := r.store.items[t.ItemID]; ok {
		item.Stock += t.Quantity
	}
	return true, nil
}

func (r *memTransactionRepo) MarkPaid(ctx context.Context, id string) error {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	if t, ok := r.store.tickets[ticketID]; ok {
		t.PaymentStatus = domain.PaymentPaid
	}
	return nil
}

type memUserRepo struct{}

func (r *memUserRepo) CreateUser(ctx context.Context, user *entities.User) error { return nil }
func (r *memUserRepo) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *memUserRepo) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return &entities.User{Email: "buyer@test.id"}, nil
}
func (r *memUserRepo) UpdateUser(ctx context.Context, user *entities.User) error { return nil }

func setup(t *testing.T) (*memStore, TransactionService) {
	t.Helper()
	store := newMemStore()
	svc := NewTransactionService(
		&memTransactionRepo{store: store},
		&memItemRepo{store: store},
		&memUserRepo{},
		nil,
	)
	return store, svc
}

func seedItem(store *memStore, stock int, price float64) *entities.Item {
	item := &entities.Item{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Name:       "Roti Sobek",
		Category:   domain.CategoryRotiKue,
		Price:      price,
		Stock:      stock,
		ExpiryDate: time.Now().AddDate(0, 0, 3),
	}
	store.items[item.ID] = item
	return item
}

var codePattern = regexp.MustCompile(`^RSQ-\d{4}$`)

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 20000)
	buyerID := uuid.New().String()

	res, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 2}, buyerID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if !codePattern.MatchString(res.UniqueCode) {
		t.Fatalf("code %q does not match RSQ-#### format", res.UniqueCode)
	}
	if res.Status != domain.TransactionPending {
		t.Fatalf("expected pending status, got %q", res.Status)
	}
	if res.TotalPrice != 20000 {
		t.Fatalf("expected total price 20000 (2 x half of 20000), got %v", res.TotalPrice)
	}
	if item.Stock != 1 {
		t.Fatalf("expected stock reserved down to 1, got %d", item.Stock)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 1, 10000)

	_, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 2}, uuid.New().String())
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if item.Stock != 1 {
		t.Fatalf("stock must be untouched on failure, got %d", item.Stock)
	}
	if len(store.tickets) != 0 {
		t.Fatalf("no ticket must be created on failure, got %d", len(store.tickets))
	}
}

func TestCreateOrderInvalidQuantity(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 10000)

	_, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 0}, uuid.New().String())
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCreateOrderExpiredItem(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 10000)
	item.ExpiryDate = time.Now().AddDate(0, 0, -1)

	_, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 1}, uuid.New().String())
	if !errors.Is(err, domain.ErrExpiredItem) {
		t.Fatalf("expected ErrExpiredItem, got %v", err)
	}
}

func TestRedeemTicket(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 20000)
	sellerID := item.UserID.String()

	res, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 2}, uuid.New().String())
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	redeemed, err := svc.RedeemTicket(ctx, res.UniqueCode, sellerID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if redeemed.TotalPrice != 20000 {
		t.Fatalf("expected total 20000, got %v", redeemed.TotalPrice)
	}
	if store.balances[item.UserID] != 20000 {
		t.Fatalf("expected seller balance 20000, got %v", store.balances[item.UserID])
	}
	if item.Stock != 1 {
		t.Fatalf("expected stock 1, got %d", item.Stock)
	}
}

func TestRedeemTicketTwice(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 20000)
	sellerID := item.UserID.String()

	res, _ := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 1}, uuid.New().String())
	if _, err := svc.RedeemTicket(ctx, res.UniqueCode, sellerID); err != nil {
		t.Fatalf("first redeem: %v", err)
	}

	_, err := svc.RedeemTicket(ctx, res.UniqueCode, sellerID)
	if !errors.Is(err, domain.ErrAlreadyRedeemed) {
		t.Fatalf("expected ErrAlreadyRedeemed, got %v", err)
	}
	if store.balances[item.UserID] != 10000 {
		t.Fatalf("balance must be credited exactly once, got %v", store.balances[item.UserID])
	}
	if item.Stock != 2 {
		t.Fatalf("stock must not change on the second attempt, got %d", item.Stock)
	}
}

func TestRedeemTicketWrongSeller(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 20000)

	res, _ := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 1}, uuid.New().String())

	_, err := svc.RedeemTicket(ctx, res.UniqueCode, uuid.New().String())
	if !errors.Is(err, domain.ErrNotYourStore) {
		t.Fatalf("expected ErrNotYourStore, got %v", err)
	}
	if store.balances[item.UserID] != 0 {
		t.Fatalf("no balance change expected, got %v", store.balances[item.UserID])
	}

	ticket, err := svc.CheckTicket(ctx, res.UniqueCode, item.UserID.String())
	if err != nil {
		t.Fatalf("check after failed redeem: %v", err)
	}
	if ticket.Status != domain.TransactionPending {
		t.Fatalf("ticket must stay pending, got %q", ticket.Status)
	}
}

func TestRedeemTicketUnknownCode(t *testing.T) {
	ctx := context.Background()
	_, svc := setup(t)

	_, err := svc.RedeemTicket(ctx, "RSQ-0000", uuid.New().String())
	if !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestRedeemTicketNormalizesCode(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 20000)

	res, _ := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 1}, uuid.New().String())

	// Cashiers paste codes with stray spaces and lowercase letters.
	messy := "  " + strings.ToLower(res.UniqueCode) + " "
	if _, err := svc.RedeemTicket(ctx, messy, item.UserID.String()); err != nil {
		t.Fatalf("redeem with messy code: %v", err)
	}
}

func TestCancelOrderReleasesStock(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 20000)
	buyerID := uuid.New().String()

	res, _ := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 2}, buyerID)
	if item.Stock != 1 {
		t.Fatalf("expected stock 1 after reservation, got %d", item.Stock)
	}

	if err := svc.CancelOrder(ctx, res.ID, buyerID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if item.Stock != 3 {
		t.Fatalf("expected stock restored to 3, got %d", item.Stock)
	}

	_, err := svc.RedeemTicket(ctx, res.UniqueCode, item.UserID.String())
	if !errors.Is(err, domain.ErrAlreadyRedeemed) {
		t.Fatalf("cancelled ticket must not be redeemable, got %v", err)
	}
}

func TestCancelOrderForeignBuyer(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 3, 20000)

	res, _ := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 1}, uuid.New().String())

	err := svc.CancelOrder(ctx, res.ID, uuid.New().String())
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for a foreign buyer, got %v", err)
	}
}

func TestCodesAreUniqueAcrossOrders(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	item := seedItem(store, 100, 10000)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{ItemID: item.ID.String(), Quantity: 1}, uuid.New().String())
		if err != nil {
			t.Fatalf("order %d: %v", i, err)
		}
		if seen[res.UniqueCode] {
			t.Fatalf("duplicate code %q issued", res.UniqueCode)
		}
		seen[res.UniqueCode] = true
	}
}
