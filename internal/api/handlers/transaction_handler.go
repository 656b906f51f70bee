package handlers

import (
	"errors"
	"resq-food-backend/domain"
	"resq-food-backend/internal/api/presenters"
	"resq-food-backend/pkg/transaction"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TransactionHandler interface {
		CreateOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		CancelOrder(c *fiber.Ctx) error
		CheckTicket(c *fiber.Ctx) error
		RedeemTicket(c *fiber.Ctx) error
		PaymentWebhook(c *fiber.Ctx) error
	}

	transactionHandler struct {
		transactionService transaction.TransactionService
		validator          *validator.Validate
	}
)

func NewTransactionHandler(transactionService transaction.TransactionService, validator *validator.Validate) TransactionHandler {
	return &transactionHandler{
		transactionService: transactionService,
		validator:          validator,
	}
}

func (h *transactionHandler) CreateOrder(c *fiber.Ctx) error {
	buyerID := c.Locals("user_id").(string)
	req := new(domain.CreateOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	res, err := h.transactionService.CreateOrder(c.Context(), *req, buyerID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *transactionHandler) GetOrders(c *fiber.Ctx) error {
	buyerID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	orders, count, err := h.transactionService.GetOrders(c.Context(), buyerID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *transactionHandler) CancelOrder(c *fiber.Ctx) error {
	buyerID := c.Locals("user_id").(string)
	orderID := c.Params("id")

	if err := h.transactionService.CancelOrder(c.Context(), orderID, buyerID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelOrder, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelOrder)
}

func (h *transactionHandler) CheckTicket(c *fiber.Ctx) error {
	sellerID := c.Locals("user_id").(string)
	code := c.Params("code")

	summary, err := h.transactionService.CheckTicket(c.Context(), code, sellerID)
	if err != nil {
		return presenters.ErrorResponse(c, ticketErrorStatus(err), domain.MessageFailedCheckTicket, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessCheckTicket)
}

func (h *transactionHandler) RedeemTicket(c *fiber.Ctx) error {
	sellerID := c.Locals("user_id").(string)
	req := new(domain.RedeemTicketRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRedeemTicket, err)
	}

	res, err := h.transactionService.RedeemTicket(c.Context(), req.Code, sellerID)
	if err != nil {
		return presenters.ErrorResponse(c, ticketErrorStatus(err), domain.MessageFailedRedeemTicket, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRedeemTicket)
}

func (h *transactionHandler) PaymentWebhook(c *fiber.Ctx) error {
	notification := new(domain.PaymentNotification)

	if err := c.BodyParser(notification); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.transactionService.ConfirmPayment(c.Context(), notification.OrderID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWebhook, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}

func ticketErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotYourStore):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyRedeemed):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}
