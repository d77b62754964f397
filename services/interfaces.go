package services

import (
	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/model"
)

// Corrector answers correction queries against a single corpus
type Corrector interface {
	// Correct returns ranked candidates for an already normalised word.
	// maxSuggestions <= 0 uses the corpus default.
	Correct(word string, maxSuggestions int) model.CorrectionResult
}

// VocabularyBrowser exposes the vocabulary of a corpus
type VocabularyBrowser interface {
	Contains(word string) bool
	WordsWithPrefix(prefix string, limit int) []model.WordCount
}

// CorpusAccessor combines querying and browsing a loaded corpus
type CorpusAccessor interface {
	Corrector
	VocabularyBrowser
	Settings() config.CorpusSettings
	Stats() model.CorpusStats
}

// CorpusManager manages the lifecycle of named corpora
type CorpusManager interface {
	LoadCorpus(settings config.CorpusSettings, data []byte) (model.CorpusStats, error)
	GetCorpus(name string) (CorpusAccessor, error)
	DeleteCorpus(name string) error
	ListCorpora() []string
}

// CorpusManagerWithAsync extends CorpusManager with background loading and deletion
type CorpusManagerWithAsync interface {
	CorpusManager
	LoadCorpusAsync(settings config.CorpusSettings, data []byte) (string, error) // Returns job ID
	DeleteCorpusAsync(name string) (string, error)                              // Returns job ID
}

// CorrectionTracker records correction queries for analytics
type CorrectionTracker interface {
	TrackCorrectionEvent(event model.CorrectionEvent) error
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(corpusName string, status *model.JobStatus) []*model.Job
}
