package monitoring

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/framp/framp-backend/internal/payout"
	"github.com/framp/framp-backend/internal/solrpc"
	"github.com/framp/framp-backend/internal/utils/logger"
)

// breaker is the shared gobreaker plumbing behind every external client wrapper.
type breaker struct {
	service        string
	circuitBreaker *gobreaker.CircuitBreaker
	metrics        *ExternalAPIMetrics
	logger         *logger.Logger
	timeoutConfig  TimeoutConfig
}

func newBreaker(service string, config CircuitBreakerConfig, timeoutConfig TimeoutConfig, metrics *ExternalAPIMetrics, logger *logger.Logger) *breaker {
	if err := validateCircuitBreakerConfig(config); err != nil {
		logger.Error("[newBreaker][validateCircuitBreakerConfig] falling back to defaults", map[string]string{
			"service": service,
			"error":   err.Error(),
		})
		config = CircuitBreakerConfigs[service]
	}

	settings := gobreaker.Settings{
		Name:        service,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.ConsecutiveFailureThreshold)
		},
		IsSuccessful: func(err error) bool {
			// caller-side validation errors say nothing about the remote's health
			return err == nil || errors.Is(err, solrpc.ErrInvalidAddress)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("[CircuitBreaker][OnStateChange]", map[string]string{
				"service": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			metrics.UpdateCircuitBreakerState(name, to)
		},
	}

	metrics.UpdateCircuitBreakerState(service, gobreaker.StateClosed)
	return &breaker{
		service:        service,
		circuitBreaker: gobreaker.NewCircuitBreaker(settings),
		metrics:        metrics,
		logger:         logger,
		timeoutConfig:  timeoutConfig,
	}
}

// execute runs fn through the breaker with an operation-scoped deadline.
func (b *breaker) execute(ctx context.Context, operation string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	timeout := b.timeoutConfig.RequestTimeout
	if operation == "health_check" {
		timeout = b.timeoutConfig.HealthCheckTimeout
	}

	return b.circuitBreaker.Execute(func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		result, err := fn(callCtx)
		duration := time.Since(start).Seconds()

		status := "success"
		if err != nil {
			status = "error"
			if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				b.metrics.RecordTimeout(b.service, operation)
			}
			b.logError(operation, duration, err)
		}
		b.metrics.RecordAPICall(b.service, operation, status, duration)
		return result, err
	})
}

func (b *breaker) State() gobreaker.State {
	return b.circuitBreaker.State()
}

func (b *breaker) logError(operation string, duration float64, err error) {
	b.logger.Error("[CircuitBreaker][ExternalCallFailed]", map[string]string{
		"service":    b.service,
		"operation":  operation,
		"duration":   strconv.FormatFloat(duration, 'f', 3, 64),
		"error":      err.Error(),
		"error_type": string(classifyError(err)),
		"cb_state":   b.circuitBreaker.State().String(),
	})
}

// CircuitBreakerPayout guards payout.IPayout. Provider-reported failures come
// back as responses, not errors, so only transport problems trip the breaker.
type CircuitBreakerPayout struct {
	*breaker
	wrapped payout.IPayout
}

func NewCircuitBreakerPayout(wrapped payout.IPayout, config CircuitBreakerConfig, timeoutConfig TimeoutConfig, metrics *ExternalAPIMetrics, logger *logger.Logger) *CircuitBreakerPayout {
	return &CircuitBreakerPayout{
		breaker: newBreaker(ServicePayoutAPI, config, timeoutConfig, metrics, logger),
		wrapped: wrapped,
	}
}

func (cb *CircuitBreakerPayout) Transfer(ctx context.Context, req payout.TransferRequest) (*payout.TransferResponse, error) {
	result, err := cb.execute(ctx, "transfer", func(ctx context.Context) (interface{}, error) {
		return cb.wrapped.Transfer(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*payout.TransferResponse), nil
}

func (cb *CircuitBreakerPayout) HealthCheck(ctx context.Context) error {
	_, err := cb.execute(ctx, "health_check", func(ctx context.Context) (interface{}, error) {
		return nil, cb.wrapped.HealthCheck(ctx)
	})
	return err
}

type CircuitBreakerSolRPC struct {
	*breaker
	wrapped solrpc.ISolRPC
}

func NewCircuitBreakerSolRPC(wrapped solrpc.ISolRPC, config CircuitBreakerConfig, timeoutConfig TimeoutConfig, metrics *ExternalAPIMetrics, logger *logger.Logger) *CircuitBreakerSolRPC {
	return &CircuitBreakerSolRPC{
		breaker: newBreaker(ServiceSolanaRPC, config, timeoutConfig, metrics, logger),
		wrapped: wrapped,
	}
}

func (cb *CircuitBreakerSolRPC) GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]solrpc.SignatureInfo, error) {
	result, err := cb.execute(ctx, "get_signatures_for_address", func(ctx context.Context) (interface{}, error) {
		return cb.wrapped.GetSignaturesForAddress(ctx, address, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.([]solrpc.SignatureInfo), nil
}

func (cb *CircuitBreakerSolRPC) GetTransaction(ctx context.Context, signature string) (*solrpc.Transaction, error) {
	result, err := cb.execute(ctx, "get_transaction", func(ctx context.Context) (interface{}, error) {
		return cb.wrapped.GetTransaction(ctx, signature)
	})
	if err != nil {
		return nil, err
	}
	return result.(*solrpc.Transaction), nil
}

func (cb *CircuitBreakerSolRPC) GetBalance(ctx context.Context, address string) (uint64, error) {
	result, err := cb.execute(ctx, "get_balance", func(ctx context.Context) (interface{}, error) {
		return cb.wrapped.GetBalance(ctx, address)
	})
	if err != nil {
		return 0, err
	}
	return result.(uint64), nil
}

func (cb *CircuitBreakerSolRPC) HealthCheck(ctx context.Context) error {
	_, err := cb.execute(ctx, "health_check", func(ctx context.Context) (interface{}, error) {
		return nil, cb.wrapped.HealthCheck(ctx)
	})
	return err
}

func classifyError(err error) APIErrorType {
	if err == nil {
		return ""
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrorTypeCircuitOpen
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeTimeout
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "timeout"),
		strings.Contains(errMsg, "deadline exceeded"),
		strings.Contains(errMsg, "context canceled"):
		return ErrorTypeTimeout
	case strings.Contains(errMsg, "connection"),
		strings.Contains(errMsg, "network"),
		strings.Contains(errMsg, "unreachable"),
		strings.Contains(errMsg, "no such host"):
		return ErrorTypeNetworkError
	case strings.Contains(errMsg, "500"),
		strings.Contains(errMsg, "502"),
		strings.Contains(errMsg, "503"),
		strings.Contains(errMsg, "504"),
		strings.Contains(errMsg, "internal server error"),
		strings.Contains(errMsg, "bad gateway"),
		strings.Contains(errMsg, "service unavailable"):
		return ErrorTypeServerError
	case strings.Contains(errMsg, "400"),
		strings.Contains(errMsg, "401"),
		strings.Contains(errMsg, "403"),
		strings.Contains(errMsg, "404"),
		strings.Contains(errMsg, "429"),
		strings.Contains(errMsg, "unauthorized"),
		strings.Contains(errMsg, "forbidden"),
		strings.Contains(errMsg, "rate limit"):
		return ErrorTypeClientError
	}
	return ErrorTypeUnknown
}

func validateCircuitBreakerConfig(config CircuitBreakerConfig) error {
	switch {
	case config.MaxRequests == 0:
		return errors.New("max_requests must be greater than 0")
	case config.ConsecutiveFailureThreshold <= 0:
		return errors.New("consecutive_failure_threshold must be greater than 0")
	case config.Timeout < 0:
		return errors.New("timeout must be non-negative")
	case config.Interval < 0:
		return errors.New("interval must be non-negative")
	}
	return nil
}
