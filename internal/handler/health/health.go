package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/monitoring"
	"github.com/framp/framp-backend/internal/payout"
	"github.com/framp/framp-backend/internal/solrpc"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

type HealthHandler struct {
	config           *config.AppConfig
	logger           *logger.Logger
	db               *gorm.DB
	payout           payout.IPayout
	solRpc           solrpc.ISolRPC
	jobStatusManager *monitoring.JobStatusManager
}

func New(config *config.AppConfig, logger *logger.Logger, db *gorm.DB, payout payout.IPayout, solRpc solrpc.ISolRPC, jobStatusManager *monitoring.JobStatusManager) IHealthHandler {
	return &HealthHandler{
		config:           config,
		logger:           logger,
		db:               db,
		payout:           payout,
		solRpc:           solRpc,
		jobStatusManager: jobStatusManager,
	}
}

// Basic handles the liveness probe
// @Summary Basic health check
// @Tags health
// @Produce json
// @Success 200 {object} BasicHealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Basic(c *gin.Context) {
	c.JSON(http.StatusOK, BasicHealthResponse{Message: "ok"})
}

// Database pings postgres and reports pool stats
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /api/v1/health/db [get]
func (h *HealthHandler) Database(c *gin.Context) {
	start := time.Now()
	response := HealthResponse{
		Timestamp: start,
		Checks:    make(map[string]HealthCheck),
	}

	dbCheck := h.checkDatabase(requestContext(c))
	response.Checks["database"] = dbCheck
	response.DurationMs = time.Since(start).Milliseconds()

	if dbCheck.Status == statusHealthy {
		response.Status = statusHealthy
		c.JSON(http.StatusOK, response)
		return
	}
	response.Status = statusUnhealthy
	c.JSON(http.StatusServiceUnavailable, response)
}

// External probes the payout provider and the Solana RPC in parallel
// @Summary External dependencies health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /api/v1/health/external [get]
func (h *HealthHandler) External(c *gin.Context) {
	start := time.Now()
	response := HealthResponse{
		Timestamp: start,
		Checks:    make(map[string]HealthCheck),
	}

	ctx, cancel := context.WithTimeout(requestContext(c), 10*time.Second)
	defer cancel()

	probes := map[string]pinger{
		monitoring.ServicePayoutAPI: h.payout,
		monitoring.ServiceSolanaRPC: h.solRpc,
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for name, probe := range probes {
		wg.Add(1)
		go func(name string, probe pinger) {
			defer wg.Done()
			check := checkExternal(ctx, name, probe)
			mu.Lock()
			response.Checks[name] = check
			mu.Unlock()
		}(name, probe)
	}
	wg.Wait()
	response.DurationMs = time.Since(start).Milliseconds()

	response.Status = statusHealthy
	for _, check := range response.Checks {
		if check.Status != statusHealthy {
			response.Status = statusUnhealthy
			break
		}
	}

	if response.Status == statusHealthy {
		c.JSON(http.StatusOK, response)
		return
	}
	c.JSON(http.StatusServiceUnavailable, response)
}

func requestContext(c *gin.Context) context.Context {
	if c.Request != nil {
		return c.Request.Context()
	}
	return context.Background()
}

func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	start := time.Now()
	check := HealthCheck{
		Metadata: make(map[string]interface{}),
	}

	if h.db == nil {
		check.Status = statusUnhealthy
		check.Error = "database connection not available"
		check.Latency = time.Since(start).Milliseconds()
		return check
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		check.Status = statusUnhealthy
		check.Error = fmt.Sprintf("failed to get underlying database: %v", err)
		check.Latency = time.Since(start).Milliseconds()
		return check
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		check.Status = statusUnhealthy
		check.Error = err.Error()
		if pingCtx.Err() == context.DeadlineExceeded {
			check.Error = "timeout"
		}
		check.Latency = time.Since(start).Milliseconds()
		return check
	}

	stats := sqlDB.Stats()
	check.Status = statusHealthy
	check.Latency = time.Since(start).Milliseconds()
	check.Metadata["driver"] = "postgres"
	check.Metadata["connection_pool"] = map[string]interface{}{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"max_open":         stats.MaxOpenConnections,
	}
	return check
}

func checkExternal(ctx context.Context, name string, probe pinger) HealthCheck {
	start := time.Now()
	check := HealthCheck{
		Metadata: map[string]interface{}{"service": name},
	}

	if probe == nil {
		check.Status = statusUnhealthy
		check.Error = name + " client not available"
		check.Latency = time.Since(start).Milliseconds()
		return check
	}

	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := probe.HealthCheck(checkCtx); err != nil {
		check.Status = statusUnhealthy
		check.Error = err.Error()
		if checkCtx.Err() == context.DeadlineExceeded {
			check.Error = "timeout"
		}
	} else {
		check.Status = statusHealthy
	}

	check.Latency = time.Since(start).Milliseconds()
	return check
}
