// Package api provides the HTTP surface of the autocorrect service.
package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-autocorrect/config"
	autocorrectErrors "github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/internal/tokenizer"
)

const (
	defaultVocabularyLimit = 50
	maxVocabularyLimit     = 1000
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCorpusName validates a corpus name parameter
func ValidateCorpusName(name string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if name == "" {
		result.AddError("name", "Corpus name is required")
		return result
	}

	if strings.TrimSpace(name) != name {
		result.AddError("name", "Corpus name cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateWord validates the word of a correction request. It returns the trimmed word.
func ValidateWord(word string) (string, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	word, err := tokenizer.CheckWord(word)
	var validationErr *autocorrectErrors.ValidationError
	if errors.As(err, &validationErr) {
		result.AddError(validationErr.Field, validationErr.Message)
	}

	return word, result
}

// ValidateMaxSuggestions validates an optional max_suggestions value. Nil means the corpus default.
func ValidateMaxSuggestions(maxSuggestions *int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if maxSuggestions == nil {
		return result
	}
	if *maxSuggestions < 1 || *maxSuggestions > config.MaxSuggestionsLimit {
		result.AddError("max_suggestions", fmt.Sprintf("max_suggestions must be between 1 and %d", config.MaxSuggestionsLimit))
	}

	return result
}

// ParseCorpusSettingsQuery applies max_suggestions and workers query parameters on top of defaults
func ParseCorpusSettingsQuery(c *gin.Context, defaults config.CorpusSettings) (config.CorpusSettings, *ValidationResult) {
	result := &ValidationResult{Valid: true}
	settings := defaults

	if raw := c.Query("max_suggestions"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			result.AddError("max_suggestions", "max_suggestions must be an integer")
		} else if vr := ValidateMaxSuggestions(&n); vr.HasErrors() {
			result.Errors = append(result.Errors, vr.Errors...)
			result.Valid = false
		} else {
			settings.MaxSuggestions = n
		}
	}

	if raw := c.Query("workers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > config.MaxWorkers {
			result.AddError("workers", fmt.Sprintf("workers must be an integer between 1 and %d", config.MaxWorkers))
		} else {
			settings.Workers = n
		}
	}

	return settings, result
}

// ParseVocabularyLimit validates the limit of a vocabulary listing
func ParseVocabularyLimit(raw string) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if raw == "" {
		return defaultVocabularyLimit, result
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		result.AddError("limit", "limit must be a positive integer")
		return 0, result
	}
	if limit > maxVocabularyLimit {
		limit = maxVocabularyLimit
	}
	return limit, result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
