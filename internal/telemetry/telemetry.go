package telemetry

import (
	"errors"

	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/solrpc"
	"github.com/framp/framp-backend/internal/store"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

var ErrTreasuryNotConfigured = errors.New("treasury wallet is not configured")

type Telemetry struct {
	db        *gorm.DB
	store     *store.Store
	appConfig *config.AppConfig
	logger    *logger.Logger
	solRpc    solrpc.ISolRPC
}

func New(db *gorm.DB, store *store.Store, appConfig *config.AppConfig, logger *logger.Logger, solRpc solrpc.ISolRPC) ITelemetry {
	return &Telemetry{
		db:        db,
		store:     store,
		appConfig: appConfig,
		logger:    logger,
		solRpc:    solRpc,
	}
}
