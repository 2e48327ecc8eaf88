package offramp

type CreateOffRampRequest struct {
	Wallet            string  `json:"wallet" binding:"required"`
	Token             string  `json:"token" binding:"required"`
	Amount            float64 `json:"amount"`
	BankAccountNumber string  `json:"bank_account_number" binding:"required"`
	BankCode          string  `json:"bank_code" binding:"required"`
	BankName          string  `json:"bank_name" binding:"required"`
	Currency          string  `json:"currency" binding:"required"`
	SignedTransaction string  `json:"signedTransaction" binding:"required"`
}

type UpdateStatusRequest struct {
	Status    string  `json:"status" binding:"required"`
	AdminNote *string `json:"admin_note"`
}

// ApproveRequest is the body of the approve endpoint; the dashboard sends camelCase keys.
type ApproveRequest struct {
	RequestID string `json:"requestId" binding:"required"`
	AdminNote string `json:"adminNote"`
}

type TriggerPayoutRequest struct {
	RequestID string `json:"request_id" binding:"required"`
}

type VerifyResponse struct {
	Confirmed []string `json:"confirmed"`
	Count     int      `json:"count"`
}
