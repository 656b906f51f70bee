package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetWallet = "wallet retrieved successfully"
	MessageSuccessWithdraw  = "balance withdrawn successfully"

	MessageFailedGetWallet = "failed to retrieve wallet"
	MessageFailedWithdraw  = "failed to withdraw balance"

	ErrEmptyBalance = errors.New("balance is empty")
	ErrWithdrawRace = errors.New("balance changed, please retry the withdrawal")
)

type (
	WalletResponse struct {
		Balance     float64              `json:"balance"`
		Withdrawals []WithdrawalResponse `json:"withdrawals"`
	}

	WithdrawalResponse struct {
		ID        string    `json:"id"`
		Amount    float64   `json:"amount"`
		CreatedAt time.Time `json:"created_at"`
	}

	WithdrawResponse struct {
		Amount  float64 `json:"amount"`
		Balance float64 `json:"balance"`
	}
)
