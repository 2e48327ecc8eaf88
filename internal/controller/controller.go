package controller

import (
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/monitoring"
	"github.com/framp/framp-backend/internal/payout"
	"github.com/framp/framp-backend/internal/store"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

type Controller struct {
	db       *gorm.DB
	store    *store.Store
	payout   payout.IPayout
	metrics  *monitoring.BusinessMetricsRecorder
	validate *validator.Validate
	logger   *logger.Logger
	config   *config.AppConfig
}

func New(
	db *gorm.DB,
	store *store.Store,
	payout payout.IPayout,
	metrics *monitoring.BusinessMetricsRecorder,
	logger *logger.Logger,
	config *config.AppConfig,
) IController {
	return &Controller{
		db:       db,
		store:    store,
		payout:   payout,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
		config:   config,
	}
}
