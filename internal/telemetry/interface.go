package telemetry

import "context"

type ITelemetry interface {
	// VerifyPendingRequests confirms pending SOL requests that have a matching
	// on-chain transfer to the treasury and returns the confirmed ids.
	VerifyPendingRequests(ctx context.Context) ([]string, error)
}
