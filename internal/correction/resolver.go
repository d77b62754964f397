// Package correction ranks spelling suggestions for a single word against a corpus model.
package correction

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-autocorrect/internal/edits"
	"github.com/gcbaptista/go-autocorrect/model"
)

// DefaultMaxSuggestions is used when no positive limit is given.
const DefaultMaxSuggestions = 3

// ProbabilityModel maps a word to its relative corpus frequency; unseen words are 0.
type ProbabilityModel interface {
	Probability(word string) float64
}

// Vocabulary answers exact-match membership.
type Vocabulary interface {
	Contains(word string) bool
}

// sizer is implemented by vocabularies that can report emptiness cheaply.
type sizer interface {
	Size() int
}

// Result is the outcome of a single query.
type Result struct {
	Word       string
	Tier       model.Tier
	Candidates []model.Candidate
}

// Option configures a Resolver
type Option func(*Resolver)

// WithMaxSuggestions caps the number of candidates returned. Values <= 0 select the default.
func WithMaxSuggestions(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxSuggestions = n
		}
	}
}

// WithWorkers spreads the two-edit search across n goroutines. Values <= 1 keep it sequential.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 1 {
			r.workers = n
		}
	}
}

// Resolver runs the exact, one-edit, two-edit cascade against a fixed model.
// It holds no per-query state and may be shared between goroutines.
type Resolver struct {
	probs          ProbabilityModel
	vocab          Vocabulary
	maxSuggestions int
	workers        int
}

// NewResolver creates a resolver over probs and vocab
func NewResolver(probs ProbabilityModel, vocab Vocabulary, opts ...Option) *Resolver {
	r := &Resolver{
		probs:          probs,
		vocab:          vocab,
		maxSuggestions: DefaultMaxSuggestions,
		workers:        1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxSuggestions returns the configured limit
func (r *Resolver) MaxSuggestions() int {
	return r.maxSuggestions
}

// Correct returns at most maxSuggestions candidates for word, most probable first.
// It uses the resolver's limit when maxSuggestions <= 0.
func (r *Resolver) Correct(word string, maxSuggestions int) Result {
	limit := r.maxSuggestions
	if maxSuggestions > 0 {
		limit = maxSuggestions
	}

	if s, ok := r.vocab.(sizer); ok && s.Size() == 0 {
		return Result{Word: word, Tier: model.TierNone, Candidates: []model.Candidate{}}
	}

	tier, known := r.lookup(word)
	return Result{
		Word:       word,
		Tier:       tier,
		Candidates: r.rank(word, known, limit),
	}
}

// Resolve is Correct with the resolver's own limit.
func (r *Resolver) Resolve(word string) Result {
	return r.Correct(word, 0)
}

// lookup walks the tiers and returns the first non-empty set of known words.
func (r *Resolver) lookup(word string) (model.Tier, []string) {
	if r.vocab.Contains(word) {
		return model.TierExact, []string{word}
	}

	if known := r.known(edits.Single(word)); len(known) > 0 {
		return model.TierSingleEdit, known
	}

	var known []string
	if r.workers > 1 {
		known = r.knownTwoEditsParallel(word)
	} else {
		known = r.known(edits.Double(word))
	}
	if len(known) > 0 {
		return model.TierDoubleEdit, known
	}

	return model.TierNone, nil
}

// known keeps the members of words that are in the vocabulary.
func (r *Resolver) known(words mapset.Set[string]) []string {
	var out []string
	words.Each(func(w string) bool {
		if r.vocab.Contains(w) {
			out = append(out, w)
		}
		return false
	})
	return out
}

// knownTwoEditsParallel expands each single edit on its own goroutine, bounded by the worker count.
func (r *Resolver) knownTwoEditsParallel(word string) []string {
	found := mapset.NewSet[string]()

	var g errgroup.Group
	g.SetLimit(r.workers)
	for _, w := range edits.Single(word).ToSlice() {
		w := w
		g.Go(func() error {
			for _, candidate := range r.known(edits.Single(w)) {
				found.Add(candidate)
			}
			return nil
		})
	}
	_ = g.Wait()

	return found.ToSlice()
}

// rank orders words by probability descending, then by word, and truncates to limit.
func (r *Resolver) rank(word string, words []string, limit int) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(words))
	for _, w := range words {
		candidates = append(candidates, model.Candidate{
			Word:        w,
			Probability: r.probs.Probability(w),
			Edits:       edits.Distance(word, w),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Probability != candidates[j].Probability {
			return candidates[i].Probability > candidates[j].Probability
		}
		return candidates[i].Word < candidates[j].Word
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Correct ranks suggestions for word using probs and vocab.
// An empty slice means no suggestions were found.
func Correct(word string, probs ProbabilityModel, vocab Vocabulary, maxSuggestions int) []model.Candidate {
	return NewResolver(probs, vocab, WithMaxSuggestions(maxSuggestions)).Resolve(word).Candidates
}
