package user

import (
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/model"
)

type IStore interface {
	ListByIDs(tx *gorm.DB, ids []string) ([]model.User, error)
}
