package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/errors"
)

// CheckWord trims a query word and returns it, or a ValidationError on field "word"
// when it is empty, not UTF-8, holds more than one word, or exceeds config.MaxWordLength.
func CheckWord(word string) (string, error) {
	word = strings.TrimSpace(word)

	switch {
	case word == "":
		return word, errors.NewValidationError("word", "Word is required and cannot be empty or whitespace-only")
	case !utf8.ValidString(word):
		return word, errors.NewValidationError("word", "Word must be valid UTF-8")
	case strings.ContainsFunc(word, unicode.IsSpace):
		return word, errors.NewValidationError("word", "Only a single word can be corrected")
	case utf8.RuneCountInString(word) > config.MaxWordLength:
		return word, errors.NewValidationError("word", fmt.Sprintf("Word exceeds maximum length of %d characters", config.MaxWordLength))
	}
	return word, nil
}
