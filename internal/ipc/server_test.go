package ipc

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/engine"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(1)
	t.Cleanup(eng.Stop)

	_, err := eng.LoadCorpus(config.CorpusSettings{Name: "animals"}, []byte("cat cat dog"))
	require.NoError(t, err)
	_, err = eng.LoadCorpus(config.CorpusSettings{Name: "speed"}, []byte("quick"))
	require.NoError(t, err)
	return eng
}

func encodeRequests(t *testing.T, requests ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}
	return &buf
}

func TestServer_Serve(t *testing.T) {
	in := encodeRequests(t,
		CorrectionRequest{ID: "1", Word: "ct"},
		CorrectionRequest{ID: "2", Word: "qwick", Limit: 1, Corpus: "speed"},
		CorrectionRequest{ID: "3", Word: "elephant"},
	)
	var out bytes.Buffer

	require.NoError(t, NewServer(newEngine(t), "animals", in, &out).Serve())

	dec := msgpack.NewDecoder(&out)

	var first CorrectionResponse
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, "single_edit", first.Tier)
	require.Len(t, first.Suggestions, 1)
	assert.Equal(t, "cat", first.Suggestions[0].Word)
	assert.InDelta(t, 2.0/3.0, first.Suggestions[0].Probability, 1e-12)

	var second CorrectionResponse
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "2", second.ID)
	require.Len(t, second.Suggestions, 1)
	assert.Equal(t, "quick", second.Suggestions[0].Word)
	assert.Equal(t, 1.0, second.Suggestions[0].Probability)

	var third CorrectionResponse
	require.NoError(t, dec.Decode(&third))
	assert.Equal(t, "3", third.ID)
	assert.Equal(t, 0, third.Count)
	assert.Empty(t, third.Suggestions)
	assert.Equal(t, "none", third.Tier)

	var extra CorrectionResponse
	assert.ErrorIs(t, dec.Decode(&extra), io.EOF)
}

func TestServer_ErrorResponses(t *testing.T) {
	in := encodeRequests(t,
		CorrectionRequest{ID: "a"},
		CorrectionRequest{ID: "b", Word: "cat", Corpus: "missing"},
		CorrectionRequest{ID: "c", Word: string(bytes.Repeat([]byte("x"), config.MaxWordLength+1))},
		CorrectionRequest{ID: "d", Word: "   "},
		CorrectionRequest{ID: "e", Word: "two words"},
	)
	var out bytes.Buffer

	require.NoError(t, NewServer(newEngine(t), "animals", in, &out).Serve())

	dec := msgpack.NewDecoder(&out)
	expected := []struct {
		id   string
		code int
	}{{"a", 400}, {"b", 404}, {"c", 400}, {"d", 400}, {"e", 400}}

	for _, e := range expected {
		var resp ErrorResponse
		require.NoError(t, dec.Decode(&resp))
		assert.Equal(t, e.id, resp.ID)
		assert.Equal(t, e.code, resp.Code)
		assert.NotEmpty(t, resp.Error)
	}

	var extra ErrorResponse
	assert.ErrorIs(t, dec.Decode(&extra), io.EOF)
}

func TestServer_MalformedInput(t *testing.T) {
	in := bytes.NewBuffer([]byte{0xc1}) // never used by msgpack
	var out bytes.Buffer

	err := NewServer(newEngine(t), "animals", in, &out).Serve()
	assert.Error(t, err)

	var resp ErrorResponse
	require.NoError(t, msgpack.NewDecoder(&out).Decode(&resp))
	assert.Equal(t, 400, resp.Code)
}
