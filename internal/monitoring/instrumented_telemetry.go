package monitoring

import (
	"context"
	"time"

	"github.com/framp/framp-backend/internal/telemetry"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
	"github.com/framp/framp-backend/internal/utils/webhook"
)

const (
	JobVerifyPendingRequests = "verify_pending_requests"

	verifyPendingRequestsTimeout = 10 * time.Minute
)

// InstrumentedTelemetry runs telemetry sweeps as monitored jobs. It satisfies
// telemetry.ITelemetry so the cron and the HTTP trigger share one code path.
type InstrumentedTelemetry struct {
	baseTelemetry telemetry.ITelemetry
	statusManager *JobStatusManager
	metrics       *BackgroundJobMetrics
	business      *BusinessMetricsRecorder
	logger        *logger.Logger
	config        *config.AppConfig
	webhookClient *webhook.Client
}

func NewInstrumentedTelemetry(
	baseTelemetry telemetry.ITelemetry,
	statusManager *JobStatusManager,
	metrics *BackgroundJobMetrics,
	business *BusinessMetricsRecorder,
	logger *logger.Logger,
	config *config.AppConfig,
) *InstrumentedTelemetry {
	statusManager.RegisterJob(JobVerifyPendingRequests)

	return &InstrumentedTelemetry{
		baseTelemetry: baseTelemetry,
		statusManager: statusManager,
		metrics:       metrics,
		business:      business,
		logger:        logger,
		config:        config,
		webhookClient: webhook.New(logger),
	}
}

func (it *InstrumentedTelemetry) VerifyPendingRequests(ctx context.Context) ([]string, error) {
	var confirmed []string
	start := time.Now()

	job := NewInstrumentedJobWithWebhook(
		JobVerifyPendingRequests,
		func(ctx context.Context) error {
			ids, err := it.baseTelemetry.VerifyPendingRequests(ctx)
			confirmed = ids
			return err
		},
		it.statusManager,
		it.logger,
		verifyPendingRequestsTimeout,
		it.webhookClient,
		it.config.UptimeWebhooks.VerifyPendingRequestsURL,
	)

	err := job.Execute(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}
	it.business.RecordVerification(status, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	it.metrics.SetConfirmedLastSweep(len(confirmed))
	return confirmed, nil
}

// RunVerifyPendingRequests is the cron entrypoint; failures are already
// recorded by the job manager.
func (it *InstrumentedTelemetry) RunVerifyPendingRequests() {
	_, _ = it.VerifyPendingRequests(context.Background())
}
