package model

import (
	"time"
)

// JobStatus is the lifecycle state of a background corpus job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Finished reports whether no further transition can happen
func (s JobStatus) Finished() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// JobType names the corpus operation a job performs
type JobType string

const (
	JobTypeBuildCorpus  JobType = "build_corpus"
	JobTypeDeleteCorpus JobType = "delete_corpus"
)

// BuildReport describes what a corpus build consumed and produced.
type BuildReport struct {
	SizeBytes      int           `json:"size_bytes"`
	Tokens         int           `json:"tokens"`
	VocabularySize int           `json:"vocabulary_size"`
	Duration       time.Duration `json:"duration_ns"` // decode and model build, excluding queueing
}

// Job is a background build or deletion of a named corpus.
// Build is set once a build job has produced its model.
type Job struct {
	ID          string            `json:"id"`
	Type        JobType           `json:"type"`
	Status      JobStatus         `json:"status"`
	CorpusName  string            `json:"corpus_name"`
	Progress    *JobProgress      `json:"progress,omitempty"`
	Build       *BuildReport      `json:"build,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// JobProgress counts the finished steps of a job
type JobProgress struct {
	Step    int    `json:"step"`
	Steps   int    `json:"steps"`
	Message string `json:"message,omitempty"`
}

// Percent returns the finished steps as a percentage (0-100)
func (p *JobProgress) Percent() float64 {
	if p.Steps == 0 {
		return 0
	}
	return float64(p.Step) / float64(p.Steps) * 100
}
