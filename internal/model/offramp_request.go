package model

import "time"

type OffRampStatus string

const (
	OffRampStatusPending    OffRampStatus = "pending"
	OffRampStatusProcessing OffRampStatus = "processing"
	OffRampStatusConfirmed  OffRampStatus = "confirmed"
	OffRampStatusApproved   OffRampStatus = "approved"
	OffRampStatusRejected   OffRampStatus = "rejected"
	OffRampStatusFailed     OffRampStatus = "failed"
)

var offRampStatuses = map[OffRampStatus]struct{}{
	OffRampStatusPending:    {},
	OffRampStatusProcessing: {},
	OffRampStatusConfirmed:  {},
	OffRampStatusApproved:   {},
	OffRampStatusRejected:   {},
	OffRampStatusFailed:     {},
}

func (s OffRampStatus) IsValid() bool {
	_, ok := offRampStatuses[s]
	return ok
}

// DisbursementStatus tracks the fiat leg. The approve flow writes "disbursed"
// while the trigger-payout flow writes "success".
type DisbursementStatus string

const (
	DisbursementStatusPending   DisbursementStatus = "pending"
	DisbursementStatusDisbursed DisbursementStatus = "disbursed"
	DisbursementStatusSuccess   DisbursementStatus = "success"
	DisbursementStatusFailed    DisbursementStatus = "failed"
)

type OffRampRequest struct {
	ID                     string             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID                 *string            `gorm:"column:user_id;type:varchar(255)" json:"user_id"`
	Wallet                 string             `gorm:"column:wallet;type:varchar(64);not null" json:"wallet"`
	Token                  string             `gorm:"column:token;type:varchar(32);not null" json:"token"`
	Amount                 float64            `gorm:"column:amount;not null" json:"amount"`
	FiatAmount             float64            `gorm:"column:fiat_amount;not null" json:"fiat_amount"`
	Currency               string             `gorm:"column:currency;type:varchar(16);not null" json:"currency"`
	BankName               string             `gorm:"column:bank_name;type:varchar(255);not null" json:"bank_name"`
	BankAccountNumber      string             `gorm:"column:bank_account_number;type:varchar(64);not null" json:"bank_account_number"`
	BankCode               string             `gorm:"column:bank_code;type:varchar(32);not null" json:"bank_code"`
	SignedTransaction      string             `gorm:"column:signed_transaction;type:text;not null" json:"signed_transaction"`
	Status                 OffRampStatus      `gorm:"column:status;type:varchar(32);not null;default:'pending'" json:"status"`
	FiatDisbursementStatus DisbursementStatus `gorm:"column:fiat_disbursement_status;type:varchar(32);not null;default:'pending'" json:"fiat_disbursement_status"`
	DisbursedAt            *time.Time         `gorm:"column:disbursed_at" json:"disbursed_at"`
	PayoutReference        *string            `gorm:"column:payout_reference;type:varchar(255)" json:"payout_reference"`
	AdminNote              *string            `gorm:"column:admin_note;type:text" json:"admin_note"`
	CreatedAt              time.Time          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt              time.Time          `gorm:"column:updated_at" json:"updated_at"`
}

func (OffRampRequest) TableName() string {
	return "offramp_requests"
}

// CanTriggerPayout is a display hint for the admin list; nothing enforces it.
func (r *OffRampRequest) CanTriggerPayout() bool {
	return r.FiatDisbursementStatus == DisbursementStatusPending && r.Status == OffRampStatusConfirmed
}
