package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/model"
	"github.com/framp/framp-backend/internal/store"
)

func (c *Controller) JoinWaitlist(email, name string) (*model.WaitlistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := c.validate.Var(email, "required,email"); err != nil {
		return nil, validationError("invalid email")
	}

	entry := &model.WaitlistEntry{
		ID:     uuid.NewString(),
		Email:  email,
		Name:   strings.TrimSpace(name),
		Status: model.WaitlistStatusPending,
	}

	err := store.DoInTx(c.db, func(tx *gorm.DB) error {
		_, err := c.store.Waitlist.GetByEmail(tx, email)
		if err == nil {
			return consts.ErrWaitlistExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		_, err = c.store.Waitlist.Create(tx, entry)
		return err
	})
	if err != nil {
		if !errors.Is(err, consts.ErrWaitlistExists) {
			c.logger.Error("[JoinWaitlist][DoInTx]", map[string]string{
				"error": err.Error(),
			})
		}
		return nil, err
	}

	return entry, nil
}

func (c *Controller) ListWaitlist(status string) ([]model.WaitlistEntry, error) {
	entries, err := c.store.Waitlist.List(c.db, strings.TrimSpace(status))
	if err != nil {
		c.logger.Error("[ListWaitlist][List]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}
	return entries, nil
}

func (c *Controller) UpdateWaitlistStatus(id string, status string) (*model.WaitlistEntry, error) {
	newStatus := model.WaitlistStatus(strings.TrimSpace(status))
	if !newStatus.IsValid() {
		return nil, validationError("unknown waitlist status %q", status)
	}

	entry, err := c.store.Waitlist.GetByID(c.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consts.ErrWaitlistNotFound
		}
		return nil, fmt.Errorf("get waitlist entry: %w", err)
	}

	if err := c.store.Waitlist.UpdateStatus(c.db, id, newStatus); err != nil {
		c.logger.Error("[UpdateWaitlistStatus][UpdateStatus]", map[string]string{
			"id":    id,
			"error": err.Error(),
		})
		return nil, err
	}

	entry.Status = newStatus
	return entry, nil
}
