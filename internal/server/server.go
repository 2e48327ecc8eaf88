package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/framp/framp-backend/internal/controller"
	"github.com/framp/framp-backend/internal/handler"
	"github.com/framp/framp-backend/internal/monitoring"
	"github.com/framp/framp-backend/internal/oracle"
	"github.com/framp/framp-backend/internal/payout"
	"github.com/framp/framp-backend/internal/solrpc"
	"github.com/framp/framp-backend/internal/store"
	pgstore "github.com/framp/framp-backend/internal/store/postgres"
	"github.com/framp/framp-backend/internal/telemetry"
	httptransport "github.com/framp/framp-backend/internal/transport/http"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

func Init() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)
	defer logger.Sync()

	if appConfig.IsVaultEnabled() {
		loadVaultSecrets(appConfig, logger)
	}

	db := pgstore.New(appConfig, logger)
	s := store.New()

	registry := prometheus.NewRegistry()
	apiMetrics := monitoring.NewExternalAPIMetrics()
	apiMetrics.MustRegister(registry)
	httpMetrics := monitoring.NewHTTPMetrics()
	httpMetrics.MustRegister(registry)
	jobMetrics := monitoring.NewBackgroundJobMetrics()
	jobMetrics.MustRegister(registry)
	business := monitoring.NewBusinessMetricsRecorder(httpMetrics)

	solClient, err := solrpc.New(appConfig, logger)
	if err != nil {
		logger.Fatal("[Init][solrpc.New]", map[string]string{
			"error": err.Error(),
		})
	}
	solRpc := monitoring.NewCircuitBreakerSolRPC(
		solClient,
		monitoring.CircuitBreakerConfigs[monitoring.ServiceSolanaRPC],
		monitoring.DefaultTimeoutConfig,
		apiMetrics,
		logger,
	)

	payoutTimeouts := monitoring.DefaultTimeoutConfig
	if appConfig.Payout.Timeout > 0 {
		payoutTimeouts.RequestTimeout = appConfig.Payout.Timeout
	}
	payoutClient := monitoring.NewCircuitBreakerPayout(
		payout.New(appConfig, logger),
		monitoring.CircuitBreakerConfigs[monitoring.ServicePayoutAPI],
		payoutTimeouts,
		apiMetrics,
		logger,
	)

	ctrl := controller.New(db, s, payoutClient, business, logger, appConfig)
	balanceOracle := oracle.New(appConfig, logger, solRpc, business)

	jobStatusManager := monitoring.NewJobStatusManager(logger, jobMetrics)
	defer jobStatusManager.Stop()
	sweep := monitoring.NewInstrumentedTelemetry(
		telemetry.New(db, s, appConfig, logger, solRpc),
		jobStatusManager,
		jobMetrics,
		business,
		logger,
		appConfig,
	)

	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{logger: logger}),
		cron.SkipIfStillRunning(cronLogger{logger: logger}),
	))
	if _, err := c.AddFunc(appConfig.VerifySchedule, sweep.RunVerifyPendingRequests); err != nil {
		logger.Fatal("[Init][AddFunc]", map[string]string{
			"schedule": appConfig.VerifySchedule,
			"error":    err.Error(),
		})
	}
	c.Start()
	defer c.Stop()

	h := handler.New(handler.Deps{
		Config:           appConfig,
		Logger:           logger,
		DB:               db,
		Controller:       ctrl,
		Telemetry:        sweep,
		Oracle:           balanceOracle,
		Payout:           payoutClient,
		SolRPC:           solRpc,
		MetricsRegistry:  registry,
		JobStatusManager: jobStatusManager,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.ApiServer.Port,
		Handler:           httptransport.NewHttpServer(appConfig, h, httpMetrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("[Init] http server listening", map[string]string{
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("[Init][ListenAndServe]", map[string]string{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("[Init] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("[Init][Shutdown]", map[string]string{
			"error": err.Error(),
		})
	}
}
