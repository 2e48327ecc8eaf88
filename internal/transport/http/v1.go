package http

import (
	"github.com/gin-gonic/gin"

	"github.com/framp/framp-backend/internal/handler"
	"github.com/framp/framp-backend/internal/utils/config"
)

func loadV1Routes(r *gin.Engine, h *handler.Handler, appConfig *config.AppConfig) {
	v1 := r.Group("/api/v1")

	authed := v1.Group("", RequireUser(appConfig))
	admin := v1.Group("/admin", RequireUser(appConfig), RequireAdmin(appConfig))

	offramp := v1.Group("/offramp")
	{
		offramp.GET("/quote", h.OffRampHandler.Quote)
		offramp.GET("/verify", h.OffRampHandler.Verify)
	}
	{
		authed.POST("/offramp/requests", h.OffRampHandler.CreateRequest)
		authed.GET("/offramp/requests/:id", h.OffRampHandler.GetRequest)
	}
	{
		admin.GET("/offramp/requests", h.OffRampHandler.ListRequests)
		admin.PATCH("/offramp/requests/:id/status", h.OffRampHandler.UpdateStatus)
		admin.POST("/offramp/approve", h.OffRampHandler.Approve)
		admin.POST("/offramp/trigger-payout", h.OffRampHandler.TriggerPayout)
		admin.GET("/treasury/balance", h.OracleHandler.GetTreasuryBalance)
		admin.GET("/waitlist", h.WaitlistHandler.List)
		admin.PATCH("/waitlist/:id", h.WaitlistHandler.UpdateStatus)
	}

	v1.POST("/waitlist", h.WaitlistHandler.Join)
	v1.GET("/wallets/:address/balance", h.OracleHandler.GetWalletBalance)

	health := v1.Group("/health")
	{
		health.GET("/db", h.HealthHandler.Database)
		health.GET("/external", h.HealthHandler.External)
		health.GET("/jobs", h.HealthHandler.Jobs)
	}

	r.GET("/healthz", h.HealthHandler.Basic)
	r.GET("/metrics", h.MetricsHandler.Handler())
}
