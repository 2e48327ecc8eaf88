package payout

type TransferRequest struct {
	AccountBank   string  `json:"account_bank" validate:"required"`
	AccountNumber string  `json:"account_number" validate:"required"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	Currency      string  `json:"currency" validate:"required"`
	Narration     string  `json:"narration"`
	CallbackURL   string  `json:"callback_url,omitempty"`
	DebitCurrency string  `json:"debit_currency" validate:"required"`
}

type TransferResponse struct {
	Status  string        `json:"status" validate:"required"`
	Message string        `json:"message"`
	Data    *TransferData `json:"data" validate:"required_if=Status success"`
}

type TransferData struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

func (r *TransferResponse) IsSuccess() bool {
	return r != nil && r.Status == "success" && r.Data != nil && r.Data.Reference != ""
}

func (r *TransferResponse) Reference() string {
	if r == nil || r.Data == nil {
		return ""
	}
	return r.Data.Reference
}
