package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsHandler struct {
	registry *prometheus.Registry
}

// NewMetricsHandler also registers the Go runtime and process collectors on registry.
func NewMetricsHandler(registry *prometheus.Registry) *MetricsHandler {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &MetricsHandler{
		registry: registry,
	}
}

// Handler serves /metrics
// @Summary Prometheus metrics
// @Tags metrics
// @Produce plain
// @Success 200 {string} string
// @Router /metrics [get]
func (h *MetricsHandler) Handler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          h.registry,
	})
	return gin.WrapH(handler)
}
