package offramprequest

import (
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/model"
)

type Store struct {
}

func New() IStore {
	return &Store{}
}

func (s *Store) Create(tx *gorm.DB, request *model.OffRampRequest) (*model.OffRampRequest, error) {
	return request, tx.Create(request).Error
}

func (s *Store) GetByID(tx *gorm.DB, id string) (*model.OffRampRequest, error) {
	var request model.OffRampRequest
	err := tx.Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *Store) List(tx *gorm.DB, filter ListFilter) ([]model.OffRampRequest, error) {
	var requests []model.OffRampRequest
	query := tx.Model(&model.OffRampRequest{})

	switch filter.Status {
	case "", consts.StatusFilterAll:
	case consts.StatusFilterPendingAll:
		query = query.Where("status = ? OR fiat_disbursement_status = ?", model.OffRampStatusPending, model.DisbursementStatusPending)
	default:
		query = query.Where("status = ? OR fiat_disbursement_status = ?", filter.Status, filter.Status)
	}

	err := query.Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) FindPending(tx *gorm.DB) ([]model.OffRampRequest, error) {
	var requests []model.OffRampRequest
	err := tx.Where("status = ?", model.OffRampStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) Update(tx *gorm.DB, id string, fields map[string]interface{}) error {
	return tx.Model(&model.OffRampRequest{}).
		Where("id = ?", id).
		Updates(fields).Error
}
