package health

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/framp/framp-backend/internal/monitoring"
)

// a critical job failing more than this many times in a row makes the service unhealthy
const criticalConsecutiveFailures = 2

var criticalJobs = []string{
	monitoring.JobVerifyPendingRequests,
}

// Jobs reports background job status
// @Summary Background jobs health check
// @Tags health
// @Produce json
// @Success 200 {object} JobsHealthResponse
// @Success 206 {object} JobsHealthResponse
// @Failure 503 {object} JobsHealthResponse
// @Router /api/v1/health/jobs [get]
func (h *HealthHandler) Jobs(c *gin.Context) {
	start := time.Now()

	if h.jobStatusManager == nil {
		c.JSON(http.StatusServiceUnavailable, JobsHealthResponse{
			Status:     statusUnhealthy,
			Timestamp:  time.Now(),
			Jobs:       make(map[string]monitoring.JobStatus),
			DurationMs: time.Since(start).Milliseconds(),
		})
		return
	}

	jobs := h.jobStatusManager.GetAllJobStatuses()
	summary := h.jobStatusManager.GetJobsSummary()
	overallStatus := jobsStatus(jobs, summary)

	response := JobsHealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Jobs:       jobs,
		Summary:    summary,
		DurationMs: time.Since(start).Milliseconds(),
	}

	statusCode := http.StatusOK
	switch overallStatus {
	case statusUnhealthy:
		statusCode = http.StatusServiceUnavailable
	case statusDegraded:
		statusCode = http.StatusPartialContent
	}

	h.logger.Info("[Jobs] health check completed", map[string]string{
		"overall_status": overallStatus,
		"duration_ms":    strconv.FormatInt(response.DurationMs, 10),
		"total_jobs":     strconv.Itoa(summary.TotalJobs),
		"unhealthy_jobs": strconv.Itoa(summary.UnhealthyJobs),
		"stalled_jobs":   strconv.Itoa(summary.StalledJobs),
	})

	c.JSON(statusCode, response)
}

func jobsStatus(jobs map[string]monitoring.JobStatus, summary monitoring.JobsSummary) string {
	if summary.StalledJobs > 0 {
		return statusUnhealthy
	}
	if summary.UnhealthyJobs == 0 {
		return statusHealthy
	}
	for _, name := range criticalJobs {
		job, ok := jobs[name]
		if ok && job.Status == monitoring.JobStatusFailed && job.ConsecutiveFailures > criticalConsecutiveFailures {
			return statusUnhealthy
		}
	}
	return statusDegraded
}
