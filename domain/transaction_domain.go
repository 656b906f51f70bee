package domain

import (
	"errors"
	"time"
)

const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionCancelled = "cancelled"

	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"

	// Redemption code shown to the cashier, e.g. RSQ-4821.
	CodePrefix = "RSQ-"
)

var (
	MessageSuccessCreateOrder  = "order created successfully"
	MessageSuccessGetOrders    = "orders retrieved successfully"
	MessageSuccessCancelOrder  = "order cancelled successfully"
	MessageSuccessCheckTicket  = "ticket is valid"
	MessageSuccessRedeemTicket = "ticket redeemed successfully"

	MessageFailedCreateOrder  = "failed to create order"
	MessageFailedGetOrders    = "failed to retrieve orders"
	MessageFailedCancelOrder  = "failed to cancel order"
	MessageFailedCheckTicket  = "failed to verify ticket"
	MessageFailedRedeemTicket = "failed to redeem ticket"

	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInsufficientStock    = errors.New("not enough stock available")
	ErrCodeNotFound         = errors.New("ticket code not found")
	ErrNotYourStore         = errors.New("ticket belongs to another store")
	ErrAlreadyRedeemed      = errors.New("ticket has already been used")
	ErrTicketNotCancellable = errors.New("ticket can no longer be cancelled")
	ErrOrderNotFound        = errors.New("order not found")
	ErrCodeGeneration       = errors.New("failed to generate a unique ticket code")
)

type (
	CreateOrderRequest struct {
		ItemID   string `json:"item_id" validate:"required,uuid"`
		Quantity int    `json:"quantity" validate:"required,min=1"`

		// When true an invoice is requested from the payment gateway.
		WithInvoice bool `json:"with_invoice"`
	}

	CreateOrderResponse struct {
		ID         string  `json:"id"`
		UniqueCode string  `json:"unique_code"`
		ItemName   string  `json:"item_name"`
		Quantity   int     `json:"quantity"`
		TotalPrice float64 `json:"total_price"`
		Status     string  `json:"status"`
		InvoiceURL string  `json:"invoice_url,omitempty"`
	}

	OrderResponse struct {
		ID            string    `json:"id"`
		ItemName      string    `json:"item_name"`
		ItemImage     string    `json:"item_image,omitempty"`
		Quantity      int       `json:"quantity"`
		TotalPrice    float64   `json:"total_price"`
		UniqueCode    string    `json:"unique_code"`
		Status        string    `json:"status"`
		PaymentStatus string    `json:"payment_status"`
		CreatedAt     time.Time `json:"created_at"`
	}

	// TicketSummary is shown to the cashier before redemption is confirmed.
	TicketSummary struct {
		ID         string  `json:"id"`
		ItemName   string  `json:"item_name"`
		Quantity   int     `json:"quantity"`
		TotalPrice float64 `json:"total_price"`
		Status     string  `json:"status"`
	}

	RedeemTicketRequest struct {
		Code string `json:"code" validate:"required"`
	}

	RedeemTicketResponse struct {
		ID         string  `json:"id"`
		ItemName   string  `json:"item_name"`
		Quantity   int     `json:"quantity"`
		TotalPrice float64 `json:"total_price"`
	}
)
