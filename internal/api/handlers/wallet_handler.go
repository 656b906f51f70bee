package handlers

import (
	"resq-food-backend/domain"
	"resq-food-backend/internal/api/presenters"
	"resq-food-backend/pkg/wallet"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	WalletHandler interface {
		GetWallet(c *fiber.Ctx) error
		Withdraw(c *fiber.Ctx) error
	}

	walletHandler struct {
		walletService wallet.WalletService
	}
)

func NewWalletHandler(walletService wallet.WalletService) WalletHandler {
	return &walletHandler{walletService: walletService}
}

func (h *walletHandler) GetWallet(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	res, count, err := h.walletService.GetWallet(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWallet, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"balance":     res.Balance,
		"withdrawals": res.Withdrawals,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetWallet)
}

func (h *walletHandler) Withdraw(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.walletService.Withdraw(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWithdraw, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessWithdraw)
}
