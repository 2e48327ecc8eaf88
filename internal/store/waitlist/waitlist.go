package waitlist

import (
	"strings"

	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/model"
)

type Store struct {
}

func New() IStore {
	return &Store{}
}

func (s *Store) Create(tx *gorm.DB, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	return entry, tx.Create(entry).Error
}

func (s *Store) GetByID(tx *gorm.DB, id string) (*model.WaitlistEntry, error) {
	var entry model.WaitlistEntry
	err := tx.Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) GetByEmail(tx *gorm.DB, email string) (*model.WaitlistEntry, error) {
	var entry model.WaitlistEntry
	err := tx.Where("LOWER(email) = ?", strings.ToLower(email)).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) List(tx *gorm.DB, status string) ([]model.WaitlistEntry, error) {
	var entries []model.WaitlistEntry
	query := tx.Model(&model.WaitlistEntry{})
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) UpdateStatus(tx *gorm.DB, id string, status model.WaitlistStatus) error {
	return tx.Model(&model.WaitlistEntry{}).
		Where("id = ?", id).
		Update("status", status).Error
}
