package monitoring

import (
	"time"
)

const (
	ServicePayoutAPI = "payout_api"
	ServiceSolanaRPC = "solana_rpc"
)

type CircuitBreakerConfig struct {
	MaxRequests                 uint32        `json:"max_requests"`
	Interval                    time.Duration `json:"interval"`
	Timeout                     time.Duration `json:"timeout"`
	ConsecutiveFailureThreshold int           `json:"consecutive_failure_threshold"`
}

type TimeoutConfig struct {
	RequestTimeout     time.Duration `json:"request_timeout"`
	HealthCheckTimeout time.Duration `json:"health_check_timeout"`
}

// APIErrorType labels external call failures for metrics and logs.
type APIErrorType string

const (
	ErrorTypeTimeout      APIErrorType = "timeout"
	ErrorTypeNetworkError APIErrorType = "network_error"
	ErrorTypeServerError  APIErrorType = "server_error"
	ErrorTypeClientError  APIErrorType = "client_error"
	ErrorTypeCircuitOpen  APIErrorType = "circuit_open"
	ErrorTypeUnknown      APIErrorType = "unknown"
)

var CircuitBreakerConfigs = map[string]CircuitBreakerConfig{
	ServicePayoutAPI: {
		MaxRequests:                 1,
		Interval:                    60 * time.Second,
		Timeout:                     60 * time.Second,
		ConsecutiveFailureThreshold: 3,
	},
	ServiceSolanaRPC: {
		MaxRequests:                 3,
		Interval:                    45 * time.Second,
		Timeout:                     30 * time.Second,
		ConsecutiveFailureThreshold: 5,
	},
}

var DefaultTimeoutConfig = TimeoutConfig{
	RequestTimeout:     10 * time.Second,
	HealthCheckTimeout: 3 * time.Second,
}
