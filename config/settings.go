// Package config provides configuration structures for the autocorrect service.
// It defines per-corpus settings and the process-wide server configuration.
package config

import (
	"fmt"
	"strings"
)

const (
	// DefaultMaxSuggestions is the number of candidates returned when a corpus does not set one
	DefaultMaxSuggestions = 3

	// MaxSuggestionsLimit bounds max_suggestions for a corpus or a single query
	MaxSuggestionsLimit = 100

	// MaxWorkers bounds the goroutines used for the two-edit search of one query
	MaxWorkers = 64

	// MaxWordLength bounds a query word in characters; the two-edit neighbourhood grows with its square
	MaxWordLength = 64
)

// CorpusSettings contains the configuration of a loaded corpus.
type CorpusSettings struct {
	Name           string `json:"name" toml:"name"`                       // Unique name for the corpus
	MaxSuggestions int    `json:"max_suggestions" toml:"max_suggestions"` // Default number of candidates per query (e.g., 3)
	Workers        int    `json:"workers" toml:"workers"`                 // Goroutines for the two-edit search; 1 keeps it sequential
}

// ApplyDefaults applies default values to the corpus settings
func (settings *CorpusSettings) ApplyDefaults() {
	if settings.MaxSuggestions <= 0 {
		settings.MaxSuggestions = DefaultMaxSuggestions
	}
	if settings.Workers <= 0 {
		settings.Workers = 1
	}
}

// Validate returns a message per invalid setting, or nil when the settings are usable.
// It expects ApplyDefaults to have run.
func (settings *CorpusSettings) Validate() []string {
	var problems []string

	name := strings.TrimSpace(settings.Name)
	if name == "" {
		problems = append(problems, "Corpus name cannot be empty or whitespace-only")
	} else if strings.ContainsAny(name, "/\\") {
		problems = append(problems, fmt.Sprintf("Corpus name '%s' cannot contain path separators", settings.Name))
	}

	if settings.MaxSuggestions < 1 || settings.MaxSuggestions > MaxSuggestionsLimit {
		problems = append(problems, fmt.Sprintf("max_suggestions must be between 1 and %d, got %d", MaxSuggestionsLimit, settings.MaxSuggestions))
	}
	if settings.Workers < 1 || settings.Workers > MaxWorkers {
		problems = append(problems, fmt.Sprintf("workers must be between 1 and %d, got %d", MaxWorkers, settings.Workers))
	}

	return problems
}
