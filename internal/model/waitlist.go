package model

import "time"

type WaitlistStatus string

const (
	WaitlistStatusPending  WaitlistStatus = "pending"
	WaitlistStatusApproved WaitlistStatus = "approved"
	WaitlistStatusRejected WaitlistStatus = "rejected"
)

func (s WaitlistStatus) IsValid() bool {
	switch s {
	case WaitlistStatusPending, WaitlistStatusApproved, WaitlistStatusRejected:
		return true
	}
	return false
}

type WaitlistEntry struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Name      string         `gorm:"column:name;type:varchar(255)" json:"name"`
	Status    WaitlistStatus `gorm:"column:status;type:varchar(32);not null;default:'pending'" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}
