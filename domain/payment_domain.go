package domain

import (
	"errors"
)

var (
	MessageSuccessWebhook = "notification processed"
	MessageFailedWebhook  = "failed to process notification"

	ErrPaymentFailed       = errors.New("payment processing failed")
	ErrInvalidNotification = errors.New("invalid payment notification")
)

type (
	PaymentInvoiceRequest struct {
		OrderID string
		Amount  int64
		Email   string
	}

	PaymentNotification struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
	}
)
