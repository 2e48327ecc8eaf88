package waitlist

import (
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/model"
)

type IStore interface {
	Create(tx *gorm.DB, entry *model.WaitlistEntry) (*model.WaitlistEntry, error)
	GetByID(tx *gorm.DB, id string) (*model.WaitlistEntry, error)
	GetByEmail(tx *gorm.DB, email string) (*model.WaitlistEntry, error)
	List(tx *gorm.DB, status string) ([]model.WaitlistEntry, error)
	UpdateStatus(tx *gorm.DB, id string, status model.WaitlistStatus) error
}
