package corpusfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/engine"
	autocorrectErrors "github.com/gcbaptista/go-autocorrect/internal/errors"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestWithMapped(t *testing.T) {
	path := writeFile(t, []byte("the quick brown fox"))

	var got string
	err := WithMapped(path, func(data []byte) error {
		got = string(data)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "the quick brown fox", got)
}

func TestWithMapped_EmptyFile(t *testing.T) {
	path := writeFile(t, nil)

	called := false
	err := WithMapped(path, func(data []byte) error {
		called = true
		assert.Empty(t, data)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestWithMapped_Errors(t *testing.T) {
	err := WithMapped(filepath.Join(t.TempDir(), "missing.txt"), func([]byte) error { return nil })
	assert.True(t, errors.Is(err, os.ErrNotExist))

	err = WithMapped(t.TempDir(), func([]byte) error { return nil })
	assert.ErrorContains(t, err, "is a directory")

	sentinel := errors.New("stop")
	err = WithMapped(writeFile(t, []byte("cat")), func([]byte) error { return sentinel })
	assert.True(t, errors.Is(err, sentinel))
}

func TestLoadInto(t *testing.T) {
	eng := engine.NewEngine(1)
	defer eng.Stop()

	stats, err := LoadInto(eng, config.CorpusSettings{Name: "animals"}, writeFile(t, []byte("Cat cat dog")))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.VocabularySize)

	result, err := eng.Correct("animals", "ct", 0)
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "cat", result.Candidates[0].Word)
	assert.Equal(t, "0.6667", result.Candidates[0].Display())
}

func TestLoadInto_InvalidUTF8(t *testing.T) {
	eng := engine.NewEngine(1)
	defer eng.Stop()

	_, err := LoadInto(eng, config.CorpusSettings{Name: "bad"}, writeFile(t, []byte{'a', 0xc0, 'b'}))
	assert.True(t, errors.Is(err, autocorrectErrors.ErrInvalidEncoding))
	assert.Empty(t, eng.ListCorpora())
}
