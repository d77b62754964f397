package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/corpus"
	"github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/internal/jobs"
	"github.com/gcbaptista/go-autocorrect/internal/logger"
	"github.com/gcbaptista/go-autocorrect/internal/tokenizer"
	"github.com/gcbaptista/go-autocorrect/model"
	"github.com/gcbaptista/go-autocorrect/services"
)

// Engine keeps named corpora in memory.
// It implements the services.CorpusManagerWithAsync interface.
type Engine struct {
	mu         sync.RWMutex
	corpora    map[string]*CorpusInstance
	jobManager *jobs.Manager
	tracker    services.CorrectionTracker
	log        *log.Logger
}

// NewEngine creates an engine whose background jobs run on jobWorkers goroutines.
func NewEngine(jobWorkers int) *Engine {
	jobManager := jobs.NewManager(jobWorkers)
	jobManager.Start()

	return &Engine{
		corpora:    make(map[string]*CorpusInstance),
		jobManager: jobManager,
		log:        logger.New("engine"),
	}
}

// Stop shuts down the job manager, cancelling running jobs.
func (e *Engine) Stop() {
	e.jobManager.Stop()
}

// SetTracker registers where correction events are reported. Nil disables tracking.
func (e *Engine) SetTracker(tracker services.CorrectionTracker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker = tracker
}

func prepareSettings(settings config.CorpusSettings) (config.CorpusSettings, error) {
	settings.Name = strings.TrimSpace(settings.Name)
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return settings, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}
	return settings, nil
}

// buildInstance decodes and builds outside any engine lock.
func buildInstance(settings config.CorpusSettings, data []byte) (*CorpusInstance, error) {
	m, err := corpus.BuildFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus '%s': %w", settings.Name, err)
	}
	return newInstanceFromModel(settings, m, len(data)), nil
}

// LoadCorpus builds a corpus from raw bytes and stores it under settings.Name,
// replacing any corpus already loaded under that name.
// Queries already running against the previous snapshot finish against it.
func (e *Engine) LoadCorpus(settings config.CorpusSettings, data []byte) (model.CorpusStats, error) {
	settings, err := prepareSettings(settings)
	if err != nil {
		return model.CorpusStats{}, err
	}

	instance, err := buildInstance(settings, data)
	if err != nil {
		return model.CorpusStats{}, err
	}

	e.swap(instance)
	return instance.Stats(), nil
}

// CreateCorpus is LoadCorpus that refuses to replace an existing corpus.
func (e *Engine) CreateCorpus(settings config.CorpusSettings, data []byte) (model.CorpusStats, error) {
	settings, err := prepareSettings(settings)
	if err != nil {
		return model.CorpusStats{}, err
	}
	if e.exists(settings.Name) {
		return model.CorpusStats{}, errors.NewCorpusAlreadyExistsError(settings.Name)
	}

	instance, err := buildInstance(settings, data)
	if err != nil {
		return model.CorpusStats{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.corpora[settings.Name]; exists {
		return model.CorpusStats{}, errors.NewCorpusAlreadyExistsError(settings.Name)
	}
	e.corpora[settings.Name] = instance
	e.logLoaded(instance, false)
	return instance.Stats(), nil
}

func (e *Engine) swap(instance *CorpusInstance) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, replaced := e.corpora[instance.settings.Name]
	e.corpora[instance.settings.Name] = instance
	e.logLoaded(instance, replaced)
}

func (e *Engine) logLoaded(instance *CorpusInstance, replaced bool) {
	verb := "loaded"
	if replaced {
		verb = "replaced"
	}
	if instance.model.IsEmpty() {
		e.log.Warnf("Corpus '%s' %s with no tokens; every query will return no suggestions", instance.settings.Name, verb)
		return
	}
	e.log.Infof("Corpus '%s' %s: %d distinct words from %d tokens", instance.settings.Name, verb, instance.model.Size(), instance.model.TotalTokens())
}

func (e *Engine) exists(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.corpora[name]
	return ok
}

func (e *Engine) instance(name string) (*CorpusInstance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.corpora[name]
	if !exists {
		return nil, errors.NewCorpusNotFoundError(name)
	}
	return instance, nil
}

// GetCorpus retrieves a corpus snapshot by its name.
func (e *Engine) GetCorpus(name string) (services.CorpusAccessor, error) {
	instance, err := e.instance(name)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// CorpusStats returns the statistics of a loaded corpus.
func (e *Engine) CorpusStats(name string) (model.CorpusStats, error) {
	instance, err := e.instance(name)
	if err != nil {
		return model.CorpusStats{}, err
	}
	return instance.Stats(), nil
}

// ListCorpora returns the names of all loaded corpora in ascending order.
func (e *Engine) ListCorpora() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.corpora))
	for name := range e.corpora {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeleteCorpus removes a corpus from memory.
func (e *Engine) DeleteCorpus(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.corpora[name]; !exists {
		return errors.NewCorpusNotFoundError(name)
	}
	delete(e.corpora, name)
	e.log.Infof("Corpus '%s' deleted", name)
	return nil
}

// Correct lower-cases word and resolves it against the named corpus.
// An empty candidate list means no suggestions; it is not an error.
func (e *Engine) Correct(name, word string, maxSuggestions int) (model.CorrectionResult, error) {
	instance, err := e.instance(name)
	if err != nil {
		return model.CorrectionResult{}, err
	}

	start := time.Now()
	result := instance.Correct(tokenizer.Normalize(strings.TrimSpace(word)), maxSuggestions)
	took := time.Since(start)

	result.Took = took.Microseconds()
	result.QueryId = uuid.New().String()

	e.log.Debugf("Corrected '%s' in corpus '%s' via %s tier: %d candidates in %v", result.Word, name, result.Tier, len(result.Candidates), took)
	e.track(result, took)
	return result, nil
}

func (e *Engine) track(result model.CorrectionResult, took time.Duration) {
	e.mu.RLock()
	tracker := e.tracker
	e.mu.RUnlock()
	if tracker == nil {
		return
	}

	event := model.CorrectionEvent{
		CorpusName:     result.Corpus,
		Word:           result.Word,
		Tier:           result.Tier,
		ResponseTime:   took,
		CandidateCount: len(result.Candidates),
	}
	if err := tracker.TrackCorrectionEvent(event); err != nil {
		e.log.Warnf("Failed to track correction event: %v", err)
	}
}

// GetJob retrieves a job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs lists jobs for a corpus, optionally filtered by status.
func (e *Engine) ListJobs(corpusName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(corpusName, status)
}

// GetJobManager exposes the job manager for metrics reporting.
func (e *Engine) GetJobManager() *jobs.Manager {
	return e.jobManager
}
