package controller

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/model"
	"github.com/framp/framp-backend/internal/store/offramprequest"
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", consts.ErrValidation, fmt.Sprintf(format, args...))
}

func (in CreateOffRampRequestInput) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"wallet", in.Wallet},
		{"token", in.Token},
		{"bank_account_number", in.BankAccountNumber},
		{"bank_code", in.BankCode},
		{"bank_name", in.BankName},
		{"currency", in.Currency},
		{"signedTransaction", in.SignedTransaction},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return validationError("%s is required", field.name)
		}
	}

	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount <= 0 {
		return validationError("amount must be greater than 0")
	}
	return nil
}

func (c *Controller) CreateOffRampRequest(input CreateOffRampRequestInput) (*CreateOffRampRequestResult, error) {
	start := time.Now()

	if err := input.validate(); err != nil {
		c.metrics.RecordOffRampRequest(input.Token, "invalid", 0)
		return nil, err
	}

	request := &model.OffRampRequest{
		ID:                     uuid.NewString(),
		UserID:                 input.UserID,
		Wallet:                 strings.TrimSpace(input.Wallet),
		Token:                  strings.TrimSpace(input.Token),
		Amount:                 input.Amount,
		FiatAmount:             model.FiatAmountAfterFee(input.Amount, c.config.OffRamp.FeePercentage),
		Currency:               strings.TrimSpace(input.Currency),
		BankName:               strings.TrimSpace(input.BankName),
		BankAccountNumber:      strings.TrimSpace(input.BankAccountNumber),
		BankCode:               strings.TrimSpace(input.BankCode),
		SignedTransaction:      input.SignedTransaction,
		Status:                 model.OffRampStatusPending,
		FiatDisbursementStatus: model.DisbursementStatusPending,
	}

	if _, err := c.store.OffRampRequest.Create(c.db, request); err != nil {
		c.logger.Error("[CreateOffRampRequest][Create]", map[string]string{
			"wallet": request.Wallet,
			"error":  err.Error(),
		})
		c.metrics.RecordOffRampRequest(request.Token, "error", time.Since(start).Seconds())
		return nil, err
	}

	c.logger.Info("[CreateOffRampRequest] request created", map[string]string{
		"id":          request.ID,
		"token":       request.Token,
		"fiat_amount": fmt.Sprintf("%f", request.FiatAmount),
	})
	c.metrics.RecordOffRampRequest(request.Token, "success", time.Since(start).Seconds())

	return &CreateOffRampRequestResult{
		ID:         request.ID,
		FiatAmount: request.FiatAmount,
	}, nil
}

func (c *Controller) GetRequest(id string) (*model.OffRampRequest, error) {
	request, err := c.store.OffRampRequest.GetByID(c.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consts.ErrNotFound
		}
		c.logger.Error("[GetRequest][GetByID]", map[string]string{
			"id":    id,
			"error": err.Error(),
		})
		return nil, err
	}
	return request, nil
}

// ListRequests fetches rows, then their users in a second query, and applies
// the free-text search on the merged result.
func (c *Controller) ListRequests(filter ListRequestsFilter) ([]OffRampRequestItem, error) {
	requests, err := c.store.OffRampRequest.List(c.db, offramprequest.ListFilter{
		Status: strings.TrimSpace(filter.Status),
	})
	if err != nil {
		c.logger.Error("[ListRequests][List]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}

	seen := make(map[string]struct{})
	userIDs := []string{}
	for _, r := range requests {
		if r.UserID == nil || *r.UserID == "" {
			continue
		}
		if _, ok := seen[*r.UserID]; ok {
			continue
		}
		seen[*r.UserID] = struct{}{}
		userIDs = append(userIDs, *r.UserID)
	}

	users, err := c.store.User.ListByIDs(c.db, userIDs)
	if err != nil {
		c.logger.Error("[ListRequests][ListByIDs]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}
	usersByID := make(map[string]model.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	items := make([]OffRampRequestItem, 0, len(requests))
	for _, r := range requests {
		item := OffRampRequestItem{
			OffRampRequest:   r,
			CanTriggerPayout: r.CanTriggerPayout(),
		}
		if r.UserID != nil {
			if u, ok := usersByID[*r.UserID]; ok {
				item.UserName = u.Name
				item.UserEmail = u.Email
				item.UserWallet = u.Wallet
			}
		}
		if search != "" && !item.matches(search) {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (i *OffRampRequestItem) matches(search string) bool {
	fields := []string{i.UserName, i.UserEmail, i.BankName, i.BankAccountNumber}
	if i.PayoutReference != nil {
		fields = append(fields, *i.PayoutReference)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func (c *Controller) UpdateStatus(id string, status string, adminNote *string) (*model.OffRampRequest, error) {
	newStatus := model.OffRampStatus(strings.TrimSpace(status))
	if !newStatus.IsValid() {
		return nil, validationError("unknown status %q", status)
	}

	request, err := c.GetRequest(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"status": newStatus,
	}
	if adminNote != nil {
		fields["admin_note"] = *adminNote
	}
	if err := c.store.OffRampRequest.Update(c.db, id, fields); err != nil {
		c.logger.Error("[UpdateStatus][Update]", map[string]string{
			"id":    id,
			"error": err.Error(),
		})
		return nil, err
	}

	c.logger.Info("[UpdateStatus] status changed", map[string]string{
		"id":   id,
		"from": string(request.Status),
		"to":   string(newStatus),
	})

	request.Status = newStatus
	if adminNote != nil {
		request.AdminNote = adminNote
	}
	return request, nil
}

func (c *Controller) Quote(token string, amount float64) (*Quote, error) {
	if strings.TrimSpace(token) == "" {
		return nil, validationError("token is required")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, validationError("amount must be greater than 0")
	}

	fee := c.config.OffRamp.FeePercentage
	return &Quote{
		Token:         token,
		Amount:        amount,
		FeePercentage: fee,
		Fee:           model.FeeAmount(amount, fee),
		FiatAmount:    model.FiatAmountAfterFee(amount, fee),
		Currency:      c.payoutCurrency(),
	}, nil
}

func (c *Controller) payoutCurrency() string {
	if c.config.Payout.Currency != "" {
		return c.config.Payout.Currency
	}
	return consts.DefaultPayoutCurrency
}
