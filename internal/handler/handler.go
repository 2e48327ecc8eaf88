package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/controller"
	"github.com/framp/framp-backend/internal/handler/health"
	"github.com/framp/framp-backend/internal/handler/metrics"
	"github.com/framp/framp-backend/internal/handler/offramp"
	"github.com/framp/framp-backend/internal/handler/oracle"
	"github.com/framp/framp-backend/internal/handler/waitlist"
	"github.com/framp/framp-backend/internal/monitoring"
	oracleService "github.com/framp/framp-backend/internal/oracle"
	"github.com/framp/framp-backend/internal/payout"
	"github.com/framp/framp-backend/internal/solrpc"
	"github.com/framp/framp-backend/internal/telemetry"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

type Handler struct {
	OffRampHandler  offramp.IHandler
	WaitlistHandler waitlist.IHandler
	OracleHandler   oracle.IHandler
	HealthHandler   health.IHealthHandler
	MetricsHandler  *metrics.MetricsHandler
}

// Deps groups everything the HTTP handlers need; it is filled once by server.Init.
type Deps struct {
	Config           *config.AppConfig
	Logger           *logger.Logger
	DB               *gorm.DB
	Controller       controller.IController
	Telemetry        telemetry.ITelemetry
	Oracle           oracleService.IOracle
	Payout           payout.IPayout
	SolRPC           solrpc.ISolRPC
	MetricsRegistry  *prometheus.Registry
	JobStatusManager *monitoring.JobStatusManager
}

func New(d Deps) *Handler {
	return &Handler{
		OffRampHandler:  offramp.New(d.Controller, d.Telemetry, d.Logger, d.Config),
		WaitlistHandler: waitlist.New(d.Controller, d.Logger),
		OracleHandler:   oracle.New(d.Oracle, d.Logger),
		HealthHandler:   health.New(d.Config, d.Logger, d.DB, d.Payout, d.SolRPC, d.JobStatusManager),
		MetricsHandler:  metrics.NewMetricsHandler(d.MetricsRegistry),
	}
}
