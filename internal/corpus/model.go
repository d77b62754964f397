// Package corpus builds the vocabulary and unigram probability model from a reference text.
package corpus

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/internal/tokenizer"
	"github.com/gcbaptista/go-autocorrect/model"
)

// Model is an immutable vocabulary with word counts and relative frequencies.
// It is safe for concurrent reads once built.
type Model struct {
	frequencies   map[string]int
	probabilities map[string]float64
	totalTokens   int
	trie          *patricia.Trie
}

// Decode validates that data is UTF-8 and returns it as a string.
// The returned error is a *errors.DecodingError carrying the offset of the first bad byte.
func Decode(data []byte) (string, error) {
	_, n, err := transform.Bytes(encoding.UTF8Validator, data)
	if err != nil {
		return "", errors.NewDecodingError(n, err)
	}
	return string(data), nil
}

// BuildFromBytes decodes data and builds a model from it. No model is returned on a decoding error.
func BuildFromBytes(data []byte) (*Model, error) {
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(text), nil
}

// Build tokenizes text and derives the frequency table and probability model.
// An empty or token-free text yields an empty model.
func Build(text string) *Model {
	tokens := tokenizer.Tokenize(text)

	m := &Model{
		frequencies:   make(map[string]int),
		probabilities: make(map[string]float64),
		totalTokens:   len(tokens),
		trie:          patricia.NewTrie(),
	}

	for _, token := range tokens {
		m.frequencies[token]++
	}

	total := float64(m.totalTokens)
	for word, count := range m.frequencies {
		m.probabilities[word] = float64(count) / total
		m.trie.Insert(patricia.Prefix(word), count)
	}

	return m
}

// Contains reports whether word is in the vocabulary.
func (m *Model) Contains(word string) bool {
	_, ok := m.frequencies[word]
	return ok
}

// Count returns the number of occurrences of word, 0 when absent.
func (m *Model) Count(word string) int {
	return m.frequencies[word]
}

// Probability returns count(word)/totalTokens, 0 for unseen words.
func (m *Model) Probability(word string) float64 {
	return m.probabilities[word]
}

// Size returns the number of distinct words.
func (m *Model) Size() int {
	return len(m.frequencies)
}

// TotalTokens returns the number of token occurrences the model was built from.
func (m *Model) TotalTokens() int {
	return m.totalTokens
}

// IsEmpty reports whether the corpus contained no tokens.
func (m *Model) IsEmpty() bool {
	return m.totalTokens == 0
}

// Vocabulary returns the distinct words in ascending order.
func (m *Model) Vocabulary() []string {
	words := make([]string, 0, len(m.frequencies))
	for word := range m.frequencies {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Probabilities returns a copy of the probability model.
func (m *Model) Probabilities() map[string]float64 {
	out := make(map[string]float64, len(m.probabilities))
	for word, p := range m.probabilities {
		out[word] = p
	}
	return out
}

// WordsWithPrefix returns vocabulary words starting with prefix, most frequent first.
// Ties are ordered by word. A limit <= 0 returns every match.
func (m *Model) WordsWithPrefix(prefix string, limit int) []model.WordCount {
	matches := []model.WordCount{}
	visit := func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		count, _ := item.(int)
		matches = append(matches, model.WordCount{
			Word:        word,
			Count:       count,
			Probability: m.probabilities[word],
		})
		return nil
	}

	prefix = tokenizer.Normalize(prefix)
	if prefix == "" {
		_ = m.trie.Visit(visit)
	} else {
		_ = m.trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Count != matches[j].Count {
			return matches[i].Count > matches[j].Count
		}
		return matches[i].Word < matches[j].Word
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
