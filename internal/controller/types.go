package controller

import (
	"github.com/framp/framp-backend/internal/model"
)

type CreateOffRampRequestInput struct {
	UserID            *string
	Wallet            string
	Token             string
	Amount            float64
	BankAccountNumber string
	BankCode          string
	BankName          string
	Currency          string
	SignedTransaction string
}

type CreateOffRampRequestResult struct {
	ID         string  `json:"id"`
	FiatAmount float64 `json:"fiat_amount"`
}

type ListRequestsFilter struct {
	Search string
	Status string
}

type OffRampRequestItem struct {
	model.OffRampRequest
	UserName         string `json:"user_name"`
	UserEmail        string `json:"user_email"`
	UserWallet       string `json:"user_wallet"`
	CanTriggerPayout bool   `json:"can_trigger_payout"`
}

type PayoutResult struct {
	Request   *model.OffRampRequest `json:"request"`
	Reference string                `json:"reference"`
}

type Quote struct {
	Token         string  `json:"token"`
	Amount        float64 `json:"amount"`
	FeePercentage float64 `json:"fee_percentage"`
	Fee           float64 `json:"fee"`
	FiatAmount    float64 `json:"fiat_amount"`
	Currency      string  `json:"currency"`
}
