package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-autocorrect/model"
	"github.com/gcbaptista/go-autocorrect/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendNotSupportedError(c, "Job management")
		return
	}

	job, err := jobManager.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs for a corpus
func (api *API) ListJobsHandler(c *gin.Context) {
	name := c.Param("name")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendNotSupportedError(c, "Job management")
		return
	}

	jobs := jobManager.ListJobs(name, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":        jobs,
		"corpus_name": name,
		"total":       len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	provider, ok := api.engine.(jobMetricsProvider)
	if !ok {
		SendNotSupportedError(c, "Job metrics")
		return
	}

	snapshot := provider.GetJobManager().GetMetrics()
	c.JSON(http.StatusOK, gin.H{
		"metrics":          snapshot,
		"success_rate":     snapshot.SuccessRate,
		"current_workload": snapshot.Active,
	})
}
