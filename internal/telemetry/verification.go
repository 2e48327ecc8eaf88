package telemetry

import (
	"context"
	"strconv"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/model"
)

func (t *Telemetry) VerifyPendingRequests(ctx context.Context) ([]string, error) {
	treasury := t.appConfig.Solana.TreasuryWallet
	if treasury == "" {
		t.logger.Error("[VerifyPendingRequests][TreasuryWallet]", map[string]string{
			"error": ErrTreasuryNotConfigured.Error(),
		})
		return nil, ErrTreasuryNotConfigured
	}

	requests, err := t.store.OffRampRequest.FindPending(t.db)
	if err != nil {
		t.logger.Error("[VerifyPendingRequests][FindPending]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}

	confirmed := []string{}
	if len(requests) == 0 {
		return confirmed, nil
	}

	t.logger.Info("[VerifyPendingRequests] start", map[string]string{
		"pending": strconv.Itoa(len(requests)),
	})

	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return confirmed, err
		}

		// only native SOL transfers can be matched
		if req.Token != consts.TokenSOL {
			continue
		}
		expected := model.SOLToLamports(req.Amount)

		matched, err := t.findMatchingTransfer(ctx, req.Wallet, treasury, expected)
		if err != nil {
			t.logger.Error("[VerifyPendingRequests][findMatchingTransfer]", map[string]string{
				"request_id": req.ID,
				"wallet":     req.Wallet,
				"error":      err.Error(),
			})
			continue
		}
		if matched == "" {
			continue
		}

		err = t.store.OffRampRequest.Update(t.db, req.ID, map[string]interface{}{
			"status": model.OffRampStatusConfirmed,
		})
		if err != nil {
			t.logger.Error("[VerifyPendingRequests][Update]", map[string]string{
				"request_id": req.ID,
				"signature":  matched,
				"error":      err.Error(),
			})
			continue
		}

		t.logger.Info("[VerifyPendingRequests] request confirmed", map[string]string{
			"request_id": req.ID,
			"signature":  matched,
		})
		confirmed = append(confirmed, req.ID)
	}

	return confirmed, nil
}

// findMatchingTransfer scans the wallet's most recent signatures one by one and
// returns the first whose transaction carries the expected transfer.
func (t *Telemetry) findMatchingTransfer(ctx context.Context, wallet, treasury string, lamports uint64) (string, error) {
	signatures, err := t.solRpc.GetSignaturesForAddress(ctx, wallet, t.signatureLimit())
	if err != nil {
		return "", err
	}

	for _, sig := range signatures {
		tx, err := t.solRpc.GetTransaction(ctx, sig.Signature)
		if err != nil {
			return "", err
		}

		for _, ix := range tx.Instructions() {
			info, ok := ix.SystemTransfer()
			if !ok {
				continue
			}
			if info.Source == wallet && info.Destination == treasury && info.Lamports == lamports {
				return sig.Signature, nil
			}
		}
	}
	return "", nil
}

func (t *Telemetry) signatureLimit() int {
	if t.appConfig.Solana.SignatureLimit > 0 {
		return t.appConfig.Solana.SignatureLimit
	}
	return consts.DefaultSignatureLimit
}
