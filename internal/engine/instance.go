package engine

import (
	"time"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/corpus"
	"github.com/gcbaptista/go-autocorrect/internal/correction"
	"github.com/gcbaptista/go-autocorrect/model"
)

// CorpusInstance is an immutable snapshot of a loaded corpus and the resolver over it.
// It implements the services.CorpusAccessor interface.
type CorpusInstance struct {
	settings  config.CorpusSettings
	model     *corpus.Model
	resolver  *correction.Resolver
	sizeBytes int
	loadedAt  time.Time
}

func newInstanceFromModel(settings config.CorpusSettings, m *corpus.Model, sizeBytes int) *CorpusInstance {
	return &CorpusInstance{
		settings: settings,
		model:    m,
		resolver: correction.NewResolver(m, m,
			correction.WithMaxSuggestions(settings.MaxSuggestions),
			correction.WithWorkers(settings.Workers),
		),
		sizeBytes: sizeBytes,
		loadedAt:  time.Now(),
	}
}

// withSettings returns a snapshot sharing the model but resolving with new settings.
func (i *CorpusInstance) withSettings(settings config.CorpusSettings) *CorpusInstance {
	next := newInstanceFromModel(settings, i.model, i.sizeBytes)
	next.loadedAt = i.loadedAt
	return next
}

// Correct resolves an already normalised word. maxSuggestions <= 0 uses the corpus setting.
func (i *CorpusInstance) Correct(word string, maxSuggestions int) model.CorrectionResult {
	result := i.resolver.Correct(word, maxSuggestions)
	return model.CorrectionResult{
		Word:       result.Word,
		Corpus:     i.settings.Name,
		Tier:       result.Tier,
		Candidates: result.Candidates,
	}
}

// Contains reports whether word is in the corpus vocabulary.
func (i *CorpusInstance) Contains(word string) bool {
	return i.model.Contains(word)
}

// WordsWithPrefix lists vocabulary words starting with prefix, most frequent first.
func (i *CorpusInstance) WordsWithPrefix(prefix string, limit int) []model.WordCount {
	return i.model.WordsWithPrefix(prefix, limit)
}

// Settings returns the configuration settings for this corpus.
func (i *CorpusInstance) Settings() config.CorpusSettings {
	return i.settings
}

// Stats summarises the snapshot.
func (i *CorpusInstance) Stats() model.CorpusStats {
	return model.CorpusStats{
		Name:           i.settings.Name,
		VocabularySize: i.model.Size(),
		TotalTokens:    i.model.TotalTokens(),
		MaxSuggestions: i.settings.MaxSuggestions,
		Workers:        i.settings.Workers,
		SizeBytes:      i.sizeBytes,
		LoadedAt:       i.loadedAt.UTC().Format(time.RFC3339),
	}
}
