package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/model"
	"github.com/framp/framp-backend/internal/payout"
)

const (
	payoutFlowApprove = "approve"
	payoutFlowTrigger = "trigger_payout"
)

func (c *Controller) transferRequest(request *model.OffRampRequest) payout.TransferRequest {
	currency := c.payoutCurrency()
	return payout.TransferRequest{
		AccountBank:   request.BankCode,
		AccountNumber: request.BankAccountNumber,
		Amount:        request.FiatAmount,
		Currency:      currency,
		Narration:     c.config.Payout.Narration,
		CallbackURL:   c.config.Payout.CallbackURL,
		DebitCurrency: currency,
	}
}

// ApproveRequest only accepts pending or processing rows. On success the row
// becomes approved/disbursed; on any failure only admin_note changes.
func (c *Controller) ApproveRequest(ctx context.Context, id string, adminNote string) (*PayoutResult, error) {
	start := time.Now()

	request, err := c.GetRequest(id)
	if err != nil {
		return nil, err
	}

	if request.Status != model.OffRampStatusPending && request.Status != model.OffRampStatusProcessing {
		c.metrics.RecordPayout(payoutFlowApprove, "rejected", 0)
		return nil, fmt.Errorf("%w: status is %s", consts.ErrInvalidState, request.Status)
	}

	resp, err := c.payout.Transfer(ctx, c.transferRequest(request))
	if err != nil || !resp.IsSuccess() {
		failure := consts.ErrPayoutUnavailable
		note := ""
		if err != nil {
			note = err.Error()
		} else {
			failure = consts.ErrPayoutFailed
			note = resp.Message
			if note == "" {
				note = "payout provider returned status " + resp.Status
			}
		}

		c.logger.Error("[ApproveRequest][Transfer]", map[string]string{
			"id":    id,
			"error": note,
		})
		c.recordAdminNote(id, note)
		c.metrics.RecordPayout(payoutFlowApprove, "failed", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %s", failure, note)
	}

	now := time.Now()
	reference := resp.Reference()
	fields := map[string]interface{}{
		"status":                   model.OffRampStatusApproved,
		"fiat_disbursement_status": model.DisbursementStatusDisbursed,
		"disbursed_at":             now,
		"payout_reference":         reference,
	}
	if adminNote != "" {
		fields["admin_note"] = adminNote
	}

	if err := c.store.OffRampRequest.Update(c.db, id, fields); err != nil {
		// money has moved; the reference is needed to reconcile by hand
		c.logger.Error("[ApproveRequest][Update] transfer succeeded but request was not updated", map[string]string{
			"id":        id,
			"reference": reference,
			"error":     err.Error(),
		})
		c.metrics.RecordPayout(payoutFlowApprove, "unrecorded", time.Since(start).Seconds())
		return nil, err
	}

	request.Status = model.OffRampStatusApproved
	request.FiatDisbursementStatus = model.DisbursementStatusDisbursed
	request.DisbursedAt = &now
	request.PayoutReference = &reference
	if adminNote != "" {
		request.AdminNote = &adminNote
	}

	c.logger.Info("[ApproveRequest] payout sent", map[string]string{
		"id":        id,
		"reference": reference,
	})
	c.metrics.RecordPayout(payoutFlowApprove, "success", time.Since(start).Seconds())

	return &PayoutResult{Request: request, Reference: reference}, nil
}

// TriggerPayout refuses only rows whose disbursement status is "success".
// Rows disbursed through ApproveRequest carry "disbursed" and are not refused.
func (c *Controller) TriggerPayout(ctx context.Context, id string) (*PayoutResult, error) {
	start := time.Now()

	request, err := c.GetRequest(id)
	if err != nil {
		return nil, err
	}

	if request.FiatDisbursementStatus == model.DisbursementStatusSuccess {
		c.metrics.RecordPayout(payoutFlowTrigger, "rejected", 0)
		return nil, consts.ErrAlreadyDisbursed
	}

	resp, err := c.payout.Transfer(ctx, c.transferRequest(request))
	if err != nil || !resp.IsSuccess() {
		failure := consts.ErrPayoutUnavailable
		note := ""
		if err != nil {
			note = "Payout error: " + err.Error()
		} else {
			failure = consts.ErrPayoutFailed
			note = fmt.Sprintf("Payout failed: %s (%s)", resp.Message, resp.Status)
		}

		c.logger.Error("[TriggerPayout][Transfer]", map[string]string{
			"id":    id,
			"error": note,
		})
		updateErr := c.store.OffRampRequest.Update(c.db, id, map[string]interface{}{
			"fiat_disbursement_status": model.DisbursementStatusFailed,
			"admin_note":               note,
		})
		if updateErr != nil {
			c.logger.Error("[TriggerPayout][Update]", map[string]string{
				"id":    id,
				"error": updateErr.Error(),
			})
		}
		c.metrics.RecordPayout(payoutFlowTrigger, "failed", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %s", failure, note)
	}

	now := time.Now()
	reference := resp.Reference()
	err = c.store.OffRampRequest.Update(c.db, id, map[string]interface{}{
		"fiat_disbursement_status": model.DisbursementStatusSuccess,
		"disbursed_at":             now,
		"payout_reference":         reference,
	})
	if err != nil {
		c.logger.Error("[TriggerPayout][Update] transfer succeeded but request was not updated", map[string]string{
			"id":        id,
			"reference": reference,
			"error":     err.Error(),
		})
		c.metrics.RecordPayout(payoutFlowTrigger, "unrecorded", time.Since(start).Seconds())
		return nil, err
	}

	request.FiatDisbursementStatus = model.DisbursementStatusSuccess
	request.DisbursedAt = &now
	request.PayoutReference = &reference

	c.logger.Info("[TriggerPayout] payout sent", map[string]string{
		"id":        id,
		"reference": reference,
	})
	c.metrics.RecordPayout(payoutFlowTrigger, "success", time.Since(start).Seconds())

	return &PayoutResult{Request: request, Reference: reference}, nil
}

func (c *Controller) recordAdminNote(id, note string) {
	err := c.store.OffRampRequest.Update(c.db, id, map[string]interface{}{
		"admin_note": note,
	})
	if err != nil {
		c.logger.Error("[recordAdminNote][Update]", map[string]string{
			"id":    id,
			"error": err.Error(),
		})
	}
}
