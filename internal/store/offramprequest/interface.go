package offramprequest

import (
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/model"
)

// ListFilter narrows the admin listing. Status is "", "all", "pending_all" or a
// literal value matched against either status column.
type ListFilter struct {
	Status string
}

type IStore interface {
	Create(tx *gorm.DB, request *model.OffRampRequest) (*model.OffRampRequest, error)
	GetByID(tx *gorm.DB, id string) (*model.OffRampRequest, error)
	List(tx *gorm.DB, filter ListFilter) ([]model.OffRampRequest, error)
	FindPending(tx *gorm.DB) ([]model.OffRampRequest, error)
	Update(tx *gorm.DB, id string, fields map[string]interface{}) error
}
