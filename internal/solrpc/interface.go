package solrpc

import "context"

type ISolRPC interface {
	GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]SignatureInfo, error)
	GetTransaction(ctx context.Context, signature string) (*Transaction, error)
	GetBalance(ctx context.Context, address string) (uint64, error)
	HealthCheck(ctx context.Context) error
}
