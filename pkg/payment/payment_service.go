package payment

import (
	"context"
	"os"
	"resq-food-backend/domain"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	PaymentService interface {
		CreateInvoice(ctx context.Context, req domain.PaymentInvoiceRequest) (string, error)
		VerifyPayment(ctx context.Context, orderID string) (bool, error)
	}

	paymentService struct {
		snapClient snap.Client
		coreClient coreapi.Client
	}
)

func NewPaymentService() PaymentService {
	serverKey := os.Getenv("SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("IS_PROD") == "true" {
		env = midtrans.Production
	}

	var snapClient snap.Client
	snapClient.New(serverKey, env)

	var coreClient coreapi.Client
	coreClient.New(serverKey, env)

	return &paymentService{
		snapClient: snapClient,
		coreClient: coreClient,
	}
}

func (s *paymentService) CreateInvoice(ctx context.Context, req domain.PaymentInvoiceRequest) (string, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
	}

	resp, err := s.snapClient.CreateTransaction(snapReq)
	if err != nil {
		return "", domain.ErrPaymentFailed
	}

	return resp.RedirectURL, nil
}

// VerifyPayment asks Midtrans for the authoritative status of an order
// instead of trusting the webhook payload.
func (s *paymentService) VerifyPayment(ctx context.Context, orderID string) (bool, error) {
	status, err := s.coreClient.CheckTransaction(orderID)
	if err != nil {
		return false, domain.ErrInvalidNotification
	}

	switch status.TransactionStatus {
	case "settlement":
		return true, nil
	case "capture":
		return status.FraudStatus == "accept", nil
	default:
		return false, nil
	}
}
