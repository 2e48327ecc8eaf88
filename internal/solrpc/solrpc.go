package solrpc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

const publicKeyLength = 32

var ErrInvalidAddress = errors.New("invalid solana address")

// SolRPC speaks Solana JSON-RPC 2.0 over a shared go-ethereum rpc client.
type SolRPC struct {
	client *rpc.Client
	logger *logger.Logger
}

func New(appConfig *config.AppConfig, logger *logger.Logger) (ISolRPC, error) {
	client, err := rpc.DialOptions(
		context.Background(),
		appConfig.Solana.RPCEndpoint,
		rpc.WithHTTPClient(&http.Client{Timeout: 15 * time.Second}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial solana rpc")
	}

	return &SolRPC{
		client: client,
		logger: logger,
	}, nil
}

// IsValidAddress reports whether address is a base58 encoded 32-byte public key.
func IsValidAddress(address string) bool {
	if address == "" {
		return false
	}
	return len(base58.Decode(address)) == publicKeyLength
}

func (s *SolRPC) GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]SignatureInfo, error) {
	if !IsValidAddress(address) {
		return nil, errors.Wrapf(ErrInvalidAddress, "address %q", address)
	}
	if limit <= 0 {
		limit = consts.DefaultSignatureLimit
	}

	var signatures []SignatureInfo
	err := s.client.CallContext(ctx, &signatures, "getSignaturesForAddress", address, map[string]interface{}{
		"limit":      limit,
		"commitment": consts.SolanaCommitment,
	})
	if err != nil {
		s.logger.Error("[GetSignaturesForAddress][CallContext]", map[string]string{
			"address": address,
			"error":   err.Error(),
		})
		return nil, errors.Wrap(err, "getSignaturesForAddress failed")
	}

	// some providers ignore limit
	if len(signatures) > limit {
		signatures = signatures[:limit]
	}
	return signatures, nil
}

// GetTransaction returns nil without error when the node does not know the signature.
func (s *SolRPC) GetTransaction(ctx context.Context, signature string) (*Transaction, error) {
	var tx *Transaction
	err := s.client.CallContext(ctx, &tx, "getTransaction", signature, map[string]interface{}{
		"encoding":                       consts.SolanaEncodingJSONParse,
		"commitment":                     consts.SolanaCommitment,
		"maxSupportedTransactionVersion": 0,
	})
	if err != nil {
		s.logger.Error("[GetTransaction][CallContext]", map[string]string{
			"signature": signature,
			"error":     err.Error(),
		})
		return nil, errors.Wrap(err, "getTransaction failed")
	}
	return tx, nil
}

func (s *SolRPC) GetBalance(ctx context.Context, address string) (uint64, error) {
	if !IsValidAddress(address) {
		return 0, errors.Wrapf(ErrInvalidAddress, "address %q", address)
	}

	var result balanceResult
	err := s.client.CallContext(ctx, &result, "getBalance", address, map[string]interface{}{
		"commitment": consts.SolanaCommitment,
	})
	if err != nil {
		return 0, errors.Wrap(err, "getBalance failed")
	}
	return result.Value, nil
}

func (s *SolRPC) HealthCheck(ctx context.Context) error {
	var status string
	if err := s.client.CallContext(ctx, &status, "getHealth"); err != nil {
		return errors.Wrap(err, "getHealth failed")
	}
	if status != "ok" {
		return fmt.Errorf("solana rpc unhealthy: %s", status)
	}
	return nil
}
