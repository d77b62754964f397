// Package testing provides helpers for tests that need a running engine with loaded corpora.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/engine"
	"github.com/gcbaptista/go-autocorrect/model"
	"github.com/gcbaptista/go-autocorrect/services"
)

// SampleCorpus is a small English corpus used across tests.
// 22 tokens: the=5, cat=3, quick=2, fox=2, dog=2, a=2, and one each of brown, jumps, over, lazy, in, hat.
const SampleCorpus = `The quick brown fox jumps over the lazy dog.
The quick cat; the cat, the dog, a fox in a hat? CAT!`

// CreateTestEngine creates an engine that is stopped when the test ends
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	eng := engine.NewEngine(2)
	t.Cleanup(eng.Stop)
	return eng
}

// LoadTestCorpus loads text under name with default settings
func LoadTestCorpus(t *testing.T, eng *engine.Engine, name, text string) model.CorpusStats {
	t.Helper()

	stats, err := eng.LoadCorpus(config.CorpusSettings{Name: name}, []byte(text))
	require.NoError(t, err, "Failed to load test corpus")
	require.Equal(t, name, stats.Name)
	return stats
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      5 * time.Second,
		PollInterval: 10 * time.Millisecond,
	}
}

// WaitForJob polls a job until it reaches a terminal status or times out
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()

	var job *model.Job
	require.Eventually(t, func() bool {
		var err error
		job, err = jobManager.GetJob(jobID)
		if err != nil {
			return false
		}
		if opts.LogProgress && job.Progress != nil {
			t.Logf("Job %s progress: %d/%d - %s", jobID, job.Progress.Step, job.Progress.Steps, job.Progress.Message)
		}
		switch job.Status {
		case model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled:
			return true
		}
		return false
	}, opts.Timeout, opts.PollInterval, "Job %s did not finish", jobID)

	return job
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedCorpus string) {
	t.Helper()

	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedCorpus, job.CorpusName, "Job corpus name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// CorrectionTestCase describes a query and the ranked words it must produce
type CorrectionTestCase struct {
	Name           string
	Word           string
	MaxSuggestions int
	ExpectedTier   model.Tier
	ExpectedWords  []string
}

// RunCorrectionTests runs a suite of correction queries against a corpus
func RunCorrectionTests(t *testing.T, corrector services.Corrector, tests []CorrectionTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result := corrector.Correct(tt.Word, tt.MaxSuggestions)

			words := make([]string, len(result.Candidates))
			for i, candidate := range result.Candidates {
				words[i] = candidate.Word
			}

			assert.Equal(t, tt.ExpectedTier, result.Tier, "Tier should match")
			assert.Equal(t, tt.ExpectedWords, words, "Ranked words should match")
		})
	}
}
