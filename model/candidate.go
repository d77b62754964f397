package model

import (
	"fmt"
)

// Tier identifies which stage of the correction cascade produced the candidates.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierSingleEdit
	TierDoubleEdit
)

// String returns the wire name of the tier
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSingleEdit:
		return "single_edit"
	case TierDoubleEdit:
		return "double_edit"
	default:
		return "none"
	}
}

// MarshalText renders the tier by name in JSON and msgpack payloads
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Candidate is a suggested correction with its corpus probability.
type Candidate struct {
	Word        string  `json:"word"`
	Probability float64 `json:"probability"`
	Edits       int     `json:"edits"` // edit distance to the query, informational only
}

// Display renders the probability with four decimals
func (c Candidate) Display() string {
	return fmt.Sprintf("%.4f", c.Probability)
}

// CorrectionResult is the response to a correction query against a named corpus.
type CorrectionResult struct {
	Word       string      `json:"word"`
	Corpus     string      `json:"corpus"`
	Tier       Tier        `json:"tier"`
	Candidates []Candidate `json:"candidates"`
	Took       int64       `json:"took"`     // microseconds
	QueryId    string      `json:"query_id"` // unique UUID for this query
}

// HasSuggestions reports whether any candidate was found
func (r CorrectionResult) HasSuggestions() bool {
	return len(r.Candidates) > 0
}

// CorpusStats describes a loaded corpus.
type CorpusStats struct {
	Name           string `json:"name"`
	VocabularySize int    `json:"vocabulary_size"`
	TotalTokens    int    `json:"total_tokens"`
	MaxSuggestions int    `json:"max_suggestions"`
	Workers        int    `json:"workers"`
	SizeBytes      int    `json:"size_bytes"`
	LoadedAt       string `json:"loaded_at"`
}

// WordCount is a vocabulary entry with its corpus statistics.
type WordCount struct {
	Word        string  `json:"word"`
	Count       int     `json:"count"`
	Probability float64 `json:"probability"`
}
