package payout

import "context"

// IPayout sends fiat transfers through the bank transfer provider.
type IPayout interface {
	// Transfer returns a nil error whenever the provider answered with a
	// decodable body, including provider-reported failures. Callers inspect
	// TransferResponse.IsSuccess.
	Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error)
	HealthCheck(ctx context.Context) error
}
