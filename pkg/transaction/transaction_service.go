package transaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"resq-food-backend/domain"
	"resq-food-backend/entities"
	"resq-food-backend/pkg/item"
	"resq-food-backend/pkg/payment"
	"resq-food-backend/pkg/user"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCodeAttempts = 5

type (
	TransactionService interface {
		CreateOrder(ctx context.Context, req domain.CreateOrderRequest, buyerID string) (domain.CreateOrderResponse, error)
		GetOrders(ctx context.Context, buyerID string, page, limit int) ([]domain.OrderResponse, int64, error)
		CancelOrder(ctx context.Context, orderID string, buyerID string) error
		CheckTicket(ctx context.Context, code string, sellerID string) (domain.TicketSummary, error)
		RedeemTicket(ctx context.Context, code string, sellerID string) (domain.RedeemTicketResponse, error)
		ConfirmPayment(ctx context.Context, orderID string) error
	}

	transactionService struct {
		transactionRepository TransactionRepository
		itemRepository        item.ItemRepository
		userRepository        user.UserRepository
		paymentService        payment.PaymentService
	}
)

// NewTransactionService builds the order/redemption workflow. paymentService
// may be nil, in which case orders never carry an invoice.
func NewTransactionService(
	transactionRepository TransactionRepository,
	itemRepository item.ItemRepository,
	userRepository user.UserRepository,
	paymentService payment.PaymentService,
) TransactionService {
	return &transactionService{
		transactionRepository: transactionRepository,
		itemRepository:        itemRepository,
		userRepository:        userRepository,
		paymentService:        paymentService,
	}
}

func (s *transactionService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest, buyerID string) (domain.CreateOrderResponse, error) {
	if req.Quantity < 1 {
		return domain.CreateOrderResponse{}, domain.ErrInvalidQuantity
	}

	buyerUUID, err := uuid.Parse(buyerID)
	if err != nil {
		return domain.CreateOrderResponse{}, domain.ErrParseUUID
	}

	it, err := s.itemRepository.GetItemByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CreateOrderResponse{}, domain.ErrItemNotFound
		}
		return domain.CreateOrderResponse{}, err
	}

	if it.ExpiryDate.Before(today()) {
		return domain.CreateOrderResponse{}, domain.ErrExpiredItem
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return domain.CreateOrderResponse{}, err
	}

	salePrice := it.Price * domain.DiscountRate
	order := &entities.Transaction{
		ID:            uuid.New(),
		ItemID:        it.ID,
		BuyerID:       buyerUUID,
		SellerID:      it.UserID,
		ItemName:      it.Name,
		ItemPrice:     salePrice,
		ItemImage:     it.ImageURL,
		Quantity:      req.Quantity,
		TotalPrice:    float64(req.Quantity) * salePrice,
		UniqueCode:    code,
		Status:        domain.TransactionPending,
		PaymentStatus: domain.PaymentUnpaid,
	}

	ok, err := s.transactionRepository.CreateOrder(ctx, order)
	if err != nil {
		return domain.CreateOrderResponse{}, err
	}
	if !ok {
		return domain.CreateOrderResponse{}, domain.ErrInsufficientStock
	}

	res := domain.CreateOrderResponse{
		ID:         order.ID.String(),
		UniqueCode: order.UniqueCode,
		ItemName:   order.ItemName,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
	}

	if req.WithInvoice && s.paymentService != nil {
		buyer, err := s.userRepository.GetUserByID(ctx, buyerID)
		if err != nil {
			return res, nil
		}
		invoiceURL, err := s.paymentService.CreateInvoice(ctx, domain.PaymentInvoiceRequest{
			OrderID: order.ID.String(),
			Amount:  int64(order.TotalPrice),
			Email:   buyer.Email,
		})
		if err != nil {
			// The ticket stands, the buyer can still pay at pickup.
			log.Printf("failed to create invoice for order %s: %v", order.ID, err)
			return res, nil
		}
		res.InvoiceURL = invoiceURL
	}

	return res, nil
}

func (s *transactionService) GetOrders(ctx context.Context, buyerID string, page, limit int) ([]domain.OrderResponse, int64, error) {
	orders, count, err := s.transactionRepository.GetOrdersByBuyer(ctx, buyerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, domain.OrderResponse{
			ID:            order.ID.String(),
			ItemName:      order.ItemName,
			ItemImage:     order.ItemImage,
			Quantity:      order.Quantity,
			TotalPrice:    order.TotalPrice,
			UniqueCode:    order.UniqueCode,
			Status:        order.Status,
			PaymentStatus: order.PaymentStatus,
			CreatedAt:     order.CreatedAt,
		})
	}

	return result, count, nil
}

func (s *transactionService) CancelOrder(ctx context.Context, orderID string, buyerID string) error {
	order, err := s.transactionRepository.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}

	if order.BuyerID.String() != buyerID {
		return domain.ErrOrderNotFound
	}
	if order.Status != domain.TransactionPending {
		return domain.ErrTicketNotCancellable
	}

	ok, err := s.transactionRepository.CancelOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrTicketNotCancellable
	}
	return nil
}

func (s *transactionService) CheckTicket(ctx context.Context, code string, sellerID string) (domain.TicketSummary, error) {
	ticket, err := s.lookupTicket(ctx, code, sellerID)
	if err != nil {
		return domain.TicketSummary{}, err
	}

	return domain.TicketSummary{
		ID:         ticket.ID.String(),
		ItemName:   ticket.ItemName,
		Quantity:   ticket.Quantity,
		TotalPrice: ticket.TotalPrice,
		Status:     ticket.Status,
	}, nil
}

func (s *transactionService) RedeemTicket(ctx context.Context, code string, sellerID string) (domain.RedeemTicketResponse, error) {
	ticket, err := s.lookupTicket(ctx, code, sellerID)
	if err != nil {
		return domain.RedeemTicketResponse{}, err
	}

	ok, err := s.transactionRepository.CompleteTransaction(ctx, ticket.ID, ticket.SellerID, ticket.TotalPrice)
	if err != nil {
		return domain.RedeemTicketResponse{}, err
	}
	if !ok {
		return domain.RedeemTicketResponse{}, domain.ErrAlreadyRedeemed
	}

	return domain.RedeemTicketResponse{
		ID:         ticket.ID.String(),
		ItemName:   ticket.ItemName,
		Quantity:   ticket.Quantity,
		TotalPrice: ticket.TotalPrice,
	}, nil
}

func (s *transactionService) ConfirmPayment(ctx context.Context, orderID string) error {
	if s.paymentService == nil {
		return domain.ErrInvalidNotification
	}

	order, err := s.transactionRepository.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}

	paid, err := s.paymentService.VerifyPayment(ctx, orderID)
	if err != nil {
		return err
	}
	if !paid {
		return nil
	}

	return s.transactionRepository.MarkPaid(ctx, order.ID.String())
}

// lookupTicket runs the cashier-side checks shared by CheckTicket and
// RedeemTicket: code normalization, existence, ownership, pending status.
// The ownership error deliberately does not say whose ticket it is.
func (s *transactionService) lookupTicket(ctx context.Context, code string, sellerID string) (*entities.Transaction, error) {
	cleanCode := strings.ToUpper(strings.TrimSpace(code))
	if cleanCode == "" {
		return nil, domain.ErrCodeNotFound
	}

	ticket, err := s.transactionRepository.GetByCode(ctx, cleanCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}

	if ticket.SellerID.String() != sellerID {
		return nil, domain.ErrNotYourStore
	}
	if ticket.Status != domain.TransactionPending {
		return nil, domain.ErrAlreadyRedeemed
	}

	return ticket, nil
}

func (s *transactionService) generateCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := fmt.Sprintf("%s%d", domain.CodePrefix, 1000+rand.Intn(9000))
		_, err := s.transactionRepository.GetByCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", domain.ErrCodeGeneration
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
