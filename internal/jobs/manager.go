package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/internal/logger"
	"github.com/gcbaptista/go-autocorrect/model"
)

// JobFunc is the body of a background job. It should return promptly once ctx is done.
type JobFunc func(ctx context.Context, job *model.Job) error

// Manager handles background job execution and tracking
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*model.Job
	workers chan struct{} // Limits concurrent jobs
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	metrics *metrics
	log     *log.Logger
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:    make(map[string]*model.Job),
		workers: make(chan struct{}, maxWorkers),
		ctx:     ctx,
		cancel:  cancel,
		metrics: newMetrics(),
		log:     logger.New("jobs"),
	}
}

// Start begins the job manager and starts background cleanup
func (m *Manager) Start() {
	m.log.Infof("Job manager started with %d max workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return
func (m *Manager) Stop() {
	m.cancel()
	m.wg.Wait()
	m.log.Infof("Job manager stopped")
}

// CreateJob creates a new job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, corpusName string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:         uuid.New().String(),
		Type:       jobType,
		Status:     model.JobStatusPending,
		CorpusName: corpusName,
		CreatedAt:  time.Now(),
		Metadata:   metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.jobCreated(jobType)
	m.log.Debugf("Created job %s (type: %s) for corpus '%s'", job.ID, job.Type, job.CorpusName)
	return job.ID
}

// GetJob retrieves a copy of a job by ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns all jobs for a corpus, optionally filtered by status
func (m *Manager) ListJobs(corpusName string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Job
	for _, job := range m.jobs {
		if job.CorpusName != corpusName {
			continue
		}
		if status == nil || job.Status == *status {
			result = append(result, copyJob(job))
		}
	}
	return result
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	if job.Build != nil {
		buildCopy := *job.Build
		jobCopy.Build = &buildCopy
	}
	return &jobCopy
}

// ExecuteJob runs jobFunc in a goroutine once a worker slot is free.
// It fails if the job is unknown, not pending, or the manager is stopping.
func (m *Manager) ExecuteJob(jobID string, jobFunc JobFunc) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}

	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}

	job.Status = model.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	snapshot := copyJob(job)
	m.mu.Unlock()

	select {
	case m.workers <- struct{}{}:
	case <-m.ctx.Done():
		m.updateJobStatus(jobID, model.JobStatusCancelled, "Job manager shutting down")
		m.metrics.jobFinished(snapshot.Type, model.JobStatusCancelled, 0)
		return fmt.Errorf("job manager is shutting down")
	}

	m.wg.Add(1)
	go func() {
		defer func() {
			<-m.workers
			m.wg.Done()
		}()

		startTime := time.Now()
		err := jobFunc(m.ctx, snapshot)
		executionTime := time.Since(startTime)

		switch {
		case err != nil && m.ctx.Err() != nil:
			m.updateJobStatus(jobID, model.JobStatusCancelled, err.Error())
			m.metrics.jobFinished(snapshot.Type, model.JobStatusCancelled, executionTime)
			m.log.Warnf("Job %s cancelled after %v: %v", jobID, executionTime, err)
		case err != nil:
			m.updateJobStatus(jobID, model.JobStatusFailed, err.Error())
			m.metrics.jobFinished(snapshot.Type, model.JobStatusFailed, executionTime)
			m.log.Errorf("Job %s failed after %v: %v", jobID, executionTime, err)
		default:
			m.updateJobStatus(jobID, model.JobStatusCompleted, "")
			m.metrics.jobFinished(snapshot.Type, model.JobStatusCompleted, executionTime)
			m.log.Infof("Job %s completed successfully in %v", jobID, executionTime)
		}
	}()

	return nil
}

// UpdateJobProgress records that step of steps is done for a running job
func (m *Manager) UpdateJobProgress(jobID string, step, steps int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}

	job.Progress.Step = step
	job.Progress.Steps = steps
	job.Progress.Message = message
}

// RecordBuild attaches the outcome of a corpus build to its job and counts it in the metrics
func (m *Manager) RecordBuild(jobID string, report model.BuildReport) {
	m.mu.Lock()
	if job, exists := m.jobs[jobID]; exists {
		job.Build = &report
	}
	m.mu.Unlock()

	m.metrics.buildFinished(report)
}

// updateJobStatus updates the status of a job (internal method)
func (m *Manager) updateJobStatus(jobID string, status model.JobStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}

	if status.Finished() {
		now := time.Now()
		job.CompletedAt = &now
	}
}

// cleanupRoutine runs periodic job cleanup
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.ctx.Done():
			return
		}
	}
}

// CleanupOldJobs removes finished jobs older than maxAge
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.log.Infof("Cleaned up %d old jobs", cleaned)
	}
}

// GetMetrics returns job outcomes per type and corpus build throughput
func (m *Manager) GetMetrics() MetricsSnapshot {
	return m.metrics.snapshot()
}

// GetJobSuccessRate returns completed / (completed + failed); cancelled jobs are not counted
func (m *Manager) GetJobSuccessRate() float64 {
	return m.metrics.snapshot().SuccessRate
}

// GetCurrentWorkload returns the number of pending or running jobs
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.snapshot().Active
}
