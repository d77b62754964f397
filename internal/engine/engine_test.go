package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-autocorrect/config"
	autocorrectErrors "github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/model"
)

type recordingTracker struct {
	mu     sync.Mutex
	events []model.CorrectionEvent
}

func (r *recordingTracker) TrackCorrectionEvent(event model.CorrectionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine := NewEngine(1)
	t.Cleanup(engine.Stop)
	return engine
}

func TestEngine_LoadCorpus(t *testing.T) {
	engine := newTestEngine(t)

	stats, err := engine.LoadCorpus(config.CorpusSettings{Name: " animals "}, []byte("Cat cat dog"))
	require.NoError(t, err)

	assert.Equal(t, "animals", stats.Name)
	assert.Equal(t, 2, stats.VocabularySize)
	assert.Equal(t, 3, stats.TotalTokens)
	assert.Equal(t, 3, stats.MaxSuggestions)
	assert.Equal(t, 1, stats.Workers)
	assert.Equal(t, 11, stats.SizeBytes)
	assert.NotEmpty(t, stats.LoadedAt)

	again, err := engine.CorpusStats("animals")
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestEngine_LoadCorpus_Errors(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.LoadCorpus(config.CorpusSettings{Name: ""}, []byte("cat"))
	assert.True(t, errors.Is(err, autocorrectErrors.ErrInvalidInput))

	_, err = engine.LoadCorpus(config.CorpusSettings{Name: "bad"}, []byte{0xfe, 0xff})
	assert.True(t, errors.Is(err, autocorrectErrors.ErrInvalidEncoding))

	var decodeErr *autocorrectErrors.DecodingError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 0, decodeErr.Offset)

	assert.Empty(t, engine.ListCorpora(), "a failed load must not register a corpus")
}

func TestEngine_LoadCorpus_ReplacesSnapshot(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.LoadCorpus(config.CorpusSettings{Name: "words"}, []byte("cat"))
	require.NoError(t, err)
	before, err := engine.GetCorpus("words")
	require.NoError(t, err)

	_, err = engine.LoadCorpus(config.CorpusSettings{Name: "words"}, []byte("dog dog"))
	require.NoError(t, err)

	assert.True(t, before.Contains("cat"), "old snapshots stay usable after a reload")
	assert.False(t, before.Contains("dog"))

	after, err := engine.GetCorpus("words")
	require.NoError(t, err)
	assert.True(t, after.Contains("dog"))
	assert.False(t, after.Contains("cat"))
	assert.Equal(t, []string{"words"}, engine.ListCorpora())
}

func TestEngine_CreateCorpus(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.CreateCorpus(config.CorpusSettings{Name: "words"}, []byte("cat"))
	require.NoError(t, err)

	_, err = engine.CreateCorpus(config.CorpusSettings{Name: "words"}, []byte("dog"))
	assert.True(t, errors.Is(err, autocorrectErrors.ErrCorpusAlreadyExists))

	corpus, err := engine.GetCorpus("words")
	require.NoError(t, err)
	assert.True(t, corpus.Contains("cat"))
}

func TestEngine_ListAndDelete(t *testing.T) {
	engine := newTestEngine(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := engine.LoadCorpus(config.CorpusSettings{Name: name}, []byte("word"))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, engine.ListCorpora())

	require.NoError(t, engine.DeleteCorpus("mid"))
	assert.Equal(t, []string{"alpha", "zeta"}, engine.ListCorpora())

	err := engine.DeleteCorpus("mid")
	assert.True(t, errors.Is(err, autocorrectErrors.ErrCorpusNotFound))

	_, err = engine.GetCorpus("mid")
	assert.True(t, errors.Is(err, autocorrectErrors.ErrCorpusNotFound))
	_, err = engine.CorpusStats("mid")
	assert.True(t, errors.Is(err, autocorrectErrors.ErrCorpusNotFound))
}

func TestEngine_Correct(t *testing.T) {
	engine := newTestEngine(t)
	tracker := &recordingTracker{}
	engine.SetTracker(tracker)

	_, err := engine.LoadCorpus(config.CorpusSettings{Name: "animals"}, []byte("cat cat dog"))
	require.NoError(t, err)

	tests := []struct {
		word          string
		expectedWord  string
		expectedTier  model.Tier
		expectedFirst string
	}{
		{"ct", "ct", model.TierSingleEdit, "cat"},
		{"CAT", "cat", model.TierExact, "cat"},
		{"  Dog ", "dog", model.TierExact, "dog"},
		{"dgo", "dgo", model.TierSingleEdit, "dog"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			result, err := engine.Correct("animals", tt.word, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedWord, result.Word)
			assert.Equal(t, "animals", result.Corpus)
			assert.Equal(t, tt.expectedTier, result.Tier)
			require.NotEmpty(t, result.Candidates)
			assert.Equal(t, tt.expectedFirst, result.Candidates[0].Word)
			assert.NotEmpty(t, result.QueryId)
		})
	}

	result, err := engine.Correct("animals", "elephant", 0)
	require.NoError(t, err)
	assert.False(t, result.HasSuggestions())
	assert.Equal(t, model.TierNone, result.Tier)

	_, err = engine.Correct("missing", "cat", 0)
	assert.True(t, errors.Is(err, autocorrectErrors.ErrCorpusNotFound))

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	require.Len(t, tracker.events, len(tests)+1)
	assert.Equal(t, "elephant", tracker.events[len(tests)].Word)
	assert.Equal(t, 0, tracker.events[len(tests)].CandidateCount)
}

func TestEngine_Correct_EmptyCorpus(t *testing.T) {
	engine := newTestEngine(t)

	stats, err := engine.LoadCorpus(config.CorpusSettings{Name: "empty"}, []byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.VocabularySize)

	result, err := engine.Correct("empty", "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.NotNil(t, result.Candidates)
}

func TestEngine_UpdateCorpusSettings(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.LoadCorpus(config.CorpusSettings{Name: "letters"}, []byte("bat cat hat mat rat"))
	require.NoError(t, err)

	result, err := engine.Correct("letters", "at", 0)
	require.NoError(t, err)
	assert.Len(t, result.Candidates, 3)

	settings, err := engine.UpdateCorpusSettings("letters", config.CorpusSettings{MaxSuggestions: 5, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, "letters", settings.Name)

	result, err = engine.Correct("letters", "at", 0)
	require.NoError(t, err)
	assert.Len(t, result.Candidates, 5)

	stats, err := engine.CorpusStats("letters")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.MaxSuggestions)
	assert.Equal(t, 5, stats.VocabularySize, "the model is reused")

	_, err = engine.UpdateCorpusSettings("letters", config.CorpusSettings{Name: "other"})
	assert.True(t, errors.Is(err, autocorrectErrors.ErrInvalidInput))

	_, err = engine.UpdateCorpusSettings("missing", config.CorpusSettings{})
	assert.True(t, errors.Is(err, autocorrectErrors.ErrCorpusNotFound))
}

func TestEngine_ConcurrentQueriesDuringReload(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.LoadCorpus(config.CorpusSettings{Name: "words"}, []byte("cat cat dog"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = engine.LoadCorpus(config.CorpusSettings{Name: "words"}, []byte("cat dog dog"))
				return
			}
			result, err := engine.Correct("words", "ct", 0)
			assert.NoError(t, err)
			assert.Equal(t, []string{"cat"}, []string{result.Candidates[0].Word})
		}(i)
	}
	wg.Wait()
}
