// Package tokenizer splits corpus text into case-folded word tokens.
package tokenizer

import (
	"regexp"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// wordRegex matches maximal runs of word characters: letters, digits and underscore.
	wordRegex *regexp.Regexp
	initOnce  sync.Once
)

// Init prepares the package-level word pattern. It is safe to call any number of
// times from any goroutine; only the first call does work. Tokenize calls it itself.
func Init() {
	initOnce.Do(func() {
		wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	})
}

// Normalize lower-cases text with Unicode-aware rules.
// A Caser keeps state, so one is created per call.
func Normalize(text string) string {
	return cases.Lower(language.Und).String(text)
}

// Tokenize lower-cases text and returns its word tokens in order of appearance.
// Every character that is not a letter, digit or underscore separates tokens and is
// discarded, so "don't" yields "don" and "t".
func Tokenize(text string) []string {
	Init()

	tokens := wordRegex.FindAllString(Normalize(text), -1)
	if tokens == nil {
		return []string{} // Initialize as empty slice, not nil
	}
	return tokens
}
