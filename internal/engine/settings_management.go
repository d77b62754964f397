package engine

import (
	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/errors"
)

// UpdateCorpusSettings changes how a corpus is queried without rebuilding its model.
// The corpus name cannot be changed.
func (e *Engine) UpdateCorpusSettings(name string, newSettings config.CorpusSettings) (config.CorpusSettings, error) {
	if newSettings.Name == "" {
		newSettings.Name = name
	}
	if newSettings.Name != name {
		return config.CorpusSettings{}, errors.NewValidationError("name", "cannot be changed")
	}

	settings, err := prepareSettings(newSettings)
	if err != nil {
		return config.CorpusSettings{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.corpora[name]
	if !exists {
		return config.CorpusSettings{}, errors.NewCorpusNotFoundError(name)
	}

	e.corpora[name] = instance.withSettings(settings)
	e.log.Infof("Corpus '%s' settings updated: max_suggestions=%d workers=%d", name, settings.MaxSuggestions, settings.Workers)
	return settings, nil
}
