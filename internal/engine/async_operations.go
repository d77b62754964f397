package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/corpus"
	"github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/model"
)

const loadCorpusSteps = 3

// LoadCorpusAsync builds a corpus in the background and returns the job ID.
// Settings are validated before the job is created.
func (e *Engine) LoadCorpusAsync(settings config.CorpusSettings, data []byte) (string, error) {
	settings, err := prepareSettings(settings)
	if err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(model.JobTypeBuildCorpus, settings.Name, map[string]string{
		"operation":  "build_corpus",
		"size_bytes": strconv.Itoa(len(data)),
	})

	err = e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeLoadCorpusJob(ctx, settings, data, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start build corpus job: %w", err)
	}

	return jobID, nil
}

// executeLoadCorpusJob decodes, builds and swaps in a corpus, reporting progress per step.
func (e *Engine) executeLoadCorpusJob(ctx context.Context, settings config.CorpusSettings, data []byte, jobID string) error {
	start := time.Now()
	e.jobManager.UpdateJobProgress(jobID, 0, loadCorpusSteps, "Decoding corpus")
	text, err := corpus.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to load corpus '%s': %w", settings.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.jobManager.UpdateJobProgress(jobID, 1, loadCorpusSteps, "Building frequency model")
	m := corpus.Build(text)
	if err := ctx.Err(); err != nil {
		return err
	}

	e.jobManager.RecordBuild(jobID, model.BuildReport{
		SizeBytes:      len(data),
		Tokens:         m.TotalTokens(),
		VocabularySize: m.Size(),
		Duration:       time.Since(start),
	})

	e.jobManager.UpdateJobProgress(jobID, 2, loadCorpusSteps, "Activating corpus")
	e.swap(newInstanceFromModel(settings, m, len(data)))

	e.jobManager.UpdateJobProgress(jobID, loadCorpusSteps, loadCorpusSteps,
		fmt.Sprintf("Loaded %d distinct words from %d tokens", m.Size(), m.TotalTokens()))
	return nil
}

// DeleteCorpusAsync deletes a corpus in the background and returns the job ID.
func (e *Engine) DeleteCorpusAsync(name string) (string, error) {
	if !e.exists(name) {
		return "", errors.NewCorpusNotFoundError(name)
	}

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteCorpus, name, map[string]string{
		"operation": "delete_corpus",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.DeleteCorpus(name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete corpus job: %w", err)
	}

	return jobID, nil
}
