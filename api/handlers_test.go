package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/engine"
	"github.com/gcbaptista/go-autocorrect/internal/jobs"
	testutil "github.com/gcbaptista/go-autocorrect/internal/testing"
	"github.com/gcbaptista/go-autocorrect/model"
)

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	SetupRoutes(router, eng, nil)
	return router
}

func setupLoadedRouter(t *testing.T) (*engine.Engine, *gin.Engine) {
	eng := testutil.CreateTestEngine(t)
	testutil.LoadTestCorpus(t, eng, "sample", testutil.SampleCorpus)
	return eng, setupTestRouter(eng)
}

func perform(router *gin.Engine, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestLoadCorpusHandler(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	router := setupTestRouter(eng)

	w := perform(router, http.MethodPost, "/corpora/sample?max_suggestions=5", []byte(testutil.SampleCorpus), "text/plain")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[struct {
		Message string            `json:"message"`
		Corpus  model.CorpusStats `json:"corpus"`
	}](t, w)

	assert.Equal(t, "Dataset loaded successfully!", resp.Message)
	assert.Equal(t, "sample", resp.Corpus.Name)
	assert.Equal(t, 12, resp.Corpus.VocabularySize)
	assert.Equal(t, 22, resp.Corpus.TotalTokens)
	assert.Equal(t, 5, resp.Corpus.MaxSuggestions)
	assert.Equal(t, []string{"sample"}, eng.ListCorpora())
}

func TestLoadCorpusHandler_Errors(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           []byte
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{
			name:           "invalid utf-8",
			path:           "/corpora/broken",
			body:           []byte("caf\xe9 au lait"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   ErrorCodeInvalidEncoding,
		},
		{
			name:           "max_suggestions not a number",
			path:           "/corpora/sample?max_suggestions=many",
			body:           []byte("cat"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "max_suggestions out of range",
			path:           "/corpora/sample?max_suggestions=101",
			body:           []byte("cat"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "workers out of range",
			path:           "/corpora/sample?workers=0",
			body:           []byte("cat"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := testutil.CreateTestEngine(t)
			router := setupTestRouter(eng)

			w := perform(router, http.MethodPost, tt.path, tt.body, "text/plain")
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			apiErr := decode[APIError](t, w)
			assert.Equal(t, tt.expectedCode, apiErr.Code)
			assert.NotEmpty(t, apiErr.RequestID)
			assert.Empty(t, eng.ListCorpora(), "no corpus should be built")
		})
	}
}

func TestLoadCorpusHandler_InvalidEncodingReportsOffset(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	router := setupTestRouter(eng)

	w := perform(router, http.MethodPost, "/corpora/broken", []byte("caf\xe9"), "text/plain")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	apiErr := decode[APIError](t, w)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "invalid UTF-8 at byte 3", apiErr.Details[0].Message)
}

func TestLoadCorpusHandler_EmptyCorpus(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	router := setupTestRouter(eng)

	w := perform(router, http.MethodPost, "/corpora/empty", nil, "text/plain")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = perform(router, http.MethodPost, "/corpora/empty/_correct", []byte(`{"word": "anything"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[CorrectionResponse](t, w)
	assert.Empty(t, resp.Candidates)
	assert.Equal(t, "none", resp.Tier)
	assert.Equal(t, "No suggestions found.", resp.Message)
}

func TestLoadCorpusHandler_Multipart(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	router := setupTestRouter(eng)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "big.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("the quick brown fox"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := perform(router, http.MethodPost, "/corpora/upload", body.Bytes(), writer.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stats, err := eng.CorpusStats("upload")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.VocabularySize)
}

func TestLoadCorpusHandler_ReplaceFalse(t *testing.T) {
	_, router := setupLoadedRouter(t)

	w := perform(router, http.MethodPost, "/corpora/sample?replace=false", []byte("cat"), "text/plain")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, ErrorCodeCorpusExists, decode[APIError](t, w).Code)

	w = perform(router, http.MethodPost, "/corpora/fresh?replace=false", []byte("cat"), "text/plain")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLoadCorpusHandler_Replace(t *testing.T) {
	eng, router := setupLoadedRouter(t)

	w := perform(router, http.MethodPost, "/corpora/sample", []byte("kitten kitten"), "text/plain")
	require.Equal(t, http.StatusOK, w.Code)

	stats, err := eng.CorpusStats("sample")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.VocabularySize)
	assert.Equal(t, 2, stats.TotalTokens)
}

func TestLoadCorpusHandler_Async(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	router := setupTestRouter(eng)

	w := perform(router, http.MethodPost, "/corpora/sample?async=true", []byte(testutil.SampleCorpus), "text/plain")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	resp := decode[map[string]interface{}](t, w)
	jobID, ok := resp["job_id"].(string)
	require.True(t, ok)

	job := testutil.WaitForJob(t, eng, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeBuildCorpus, "sample")

	w = perform(router, http.MethodGet, "/jobs/"+jobID, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/corpora/sample/jobs?status=completed", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]interface{}](t, w)["total"])
}

func TestLoadCorpusHandler_PayloadTooLarge(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestSizeLimitMiddleware(8))
	SetupRoutes(router, eng, nil)

	w := perform(router, http.MethodPost, "/corpora/big", []byte(strings.Repeat("word ", 10)), "text/plain")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, ErrorCodePayloadTooLarge, decode[APIError](t, w).Code)
}

func TestCorrectHandler(t *testing.T) {
	_, router := setupLoadedRouter(t)

	tests := []struct {
		name          string
		body          string
		expectedTier  string
		expectedWords []string
		expectedFirst string // display of the first candidate
	}{
		{
			name:          "exact match short-circuits",
			body:          `{"word": "the"}`,
			expectedTier:  "exact",
			expectedWords: []string{"the"},
			expectedFirst: "0.2273",
		},
		{
			name:          "missing letter",
			body:          `{"word": "ct"}`,
			expectedTier:  "single_edit",
			expectedWords: []string{"cat"},
			expectedFirst: "0.1364",
		},
		{
			name:          "transposition",
			body:          `{"word": "hte"}`,
			expectedTier:  "single_edit",
			expectedWords: []string{"the"},
			expectedFirst: "0.2273",
		},
		{
			name:          "query is lower-cased and ranked by probability",
			body:          `{"word": "  AT "}`,
			expectedTier:  "single_edit",
			expectedWords: []string{"cat", "a", "hat"},
			expectedFirst: "0.1364",
		},
		{
			name:          "max_suggestions truncates",
			body:          `{"word": "at", "max_suggestions": 1}`,
			expectedTier:  "single_edit",
			expectedWords: []string{"cat"},
			expectedFirst: "0.1364",
		},
		{
			name:          "missing vowel",
			body:          `{"word": "qick"}`,
			expectedTier:  "single_edit",
			expectedWords: []string{"quick"},
			expectedFirst: "0.0909",
		},
		{
			name:          "two edits away",
			body:          `{"word": "jmpz"}`,
			expectedTier:  "double_edit",
			expectedWords: []string{"jumps"},
			expectedFirst: "0.0455",
		},
		{
			name:          "no suggestions",
			body:          `{"word": "xyzzyq"}`,
			expectedTier:  "none",
			expectedWords: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, http.MethodPost, "/corpora/sample/_correct", []byte(tt.body), "application/json")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := decode[CorrectionResponse](t, w)
			words := make([]string, len(resp.Candidates))
			for i, candidate := range resp.Candidates {
				words[i] = candidate.Word
			}

			assert.Equal(t, tt.expectedTier, resp.Tier)
			assert.Equal(t, tt.expectedWords, words)
			assert.Equal(t, len(words), resp.Total)
			assert.NotEmpty(t, resp.QueryId)
			if len(words) == 0 {
				assert.Equal(t, "No suggestions found.", resp.Message)
			} else {
				assert.Equal(t, tt.expectedFirst, resp.Candidates[0].Display)
				assert.Empty(t, resp.Message)
			}
		})
	}
}

func TestCorrectHandler_Errors(t *testing.T) {
	_, router := setupLoadedRouter(t)

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{"empty word", "/corpora/sample/_correct", `{"word": "   "}`, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"several words", "/corpora/sample/_correct", `{"word": "two words"}`, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"word too long", "/corpora/sample/_correct", `{"word": "` + strings.Repeat("a", config.MaxWordLength+1) + `"}`, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"zero max_suggestions", "/corpora/sample/_correct", `{"word": "cat", "max_suggestions": 0}`, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"malformed json", "/corpora/sample/_correct", `{"word":`, http.StatusBadRequest, ErrorCodeInvalidJSON},
		{"unknown corpus", "/corpora/missing/_correct", `{"word": "cat"}`, http.StatusNotFound, ErrorCodeCorpusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, http.MethodPost, tt.path, []byte(tt.body), "application/json")
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedCode, decode[APIError](t, w).Code)
		})
	}
}

func TestListAndGetCorpusHandlers(t *testing.T) {
	eng, router := setupLoadedRouter(t)
	testutil.LoadTestCorpus(t, eng, "another", "cat")

	w := perform(router, http.MethodGet, "/corpora", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Corpora []string `json:"corpora"`
		Count   int      `json:"count"`
	}](t, w)
	assert.Equal(t, []string{"another", "sample"}, list.Corpora)
	assert.Equal(t, 2, list.Count)

	w = perform(router, http.MethodGet, "/corpora/sample", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[model.CorpusStats](t, w)
	assert.Equal(t, 12, stats.VocabularySize)
	assert.Equal(t, config.DefaultMaxSuggestions, stats.MaxSuggestions)

	w = perform(router, http.MethodGet, "/corpora/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCorpusHandler(t *testing.T) {
	eng, router := setupLoadedRouter(t)

	w := perform(router, http.MethodDelete, "/corpora/sample", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, eng.ListCorpora())

	w = perform(router, http.MethodDelete, "/corpora/sample", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCorpusHandler_Async(t *testing.T) {
	eng, router := setupLoadedRouter(t)

	w := perform(router, http.MethodDelete, "/corpora/sample?async=true", nil, "")
	require.Equal(t, http.StatusAccepted, w.Code)

	jobID := decode[map[string]interface{}](t, w)["job_id"].(string)
	job := testutil.WaitForJob(t, eng, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeDeleteCorpus, "sample")
	assert.Empty(t, eng.ListCorpora())

	w = perform(router, http.MethodDelete, "/corpora/missing?async=true", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCorpusSettingsHandler(t *testing.T) {
	_, router := setupLoadedRouter(t)

	w := perform(router, http.MethodPatch, "/corpora/sample/settings", []byte(`{"max_suggestions": 1}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = perform(router, http.MethodPost, "/corpora/sample/_correct", []byte(`{"word": "at"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[CorrectionResponse](t, w)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "cat", resp.Candidates[0].Word)

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
	}{
		{"max_suggestions out of range", "/corpora/sample/settings", `{"max_suggestions": 0}`, http.StatusBadRequest},
		{"workers out of range", "/corpora/sample/settings", `{"workers": 1000}`, http.StatusBadRequest},
		{"malformed json", "/corpora/sample/settings", `nope`, http.StatusBadRequest},
		{"unknown corpus", "/corpora/missing/settings", `{"workers": 2}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, http.MethodPatch, tt.path, []byte(tt.body), "application/json")
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestGetVocabularyHandler(t *testing.T) {
	_, router := setupLoadedRouter(t)

	w := perform(router, http.MethodGet, "/corpora/sample/vocabulary?prefix=TH", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Words []model.WordCount `json:"words"`
		Total int               `json:"total"`
	}](t, w)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "the", resp.Words[0].Word)
	assert.Equal(t, 5, resp.Words[0].Count)

	w = perform(router, http.MethodGet, "/corpora/sample/vocabulary?limit=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[struct {
		Words []model.WordCount `json:"words"`
		Total int               `json:"total"`
	}](t, w)
	require.Len(t, resp.Words, 2)
	assert.Equal(t, "the", resp.Words[0].Word)
	assert.Equal(t, "cat", resp.Words[1].Word)

	w = perform(router, http.MethodGet, "/corpora/sample/vocabulary?limit=-1", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandlers(t *testing.T) {
	eng, router := setupLoadedRouter(t)

	jobID, err := eng.LoadCorpusAsync(config.CorpusSettings{Name: "async"}, []byte(testutil.SampleCorpus))
	require.NoError(t, err)
	testutil.WaitForJob(t, eng, jobID, testutil.DefaultJobPollingOptions())

	w := perform(router, http.MethodGet, "/jobs/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorCodeJobNotFound, decode[APIError](t, w).Code)

	w = perform(router, http.MethodGet, "/jobs/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	metrics := decode[struct {
		Metrics     jobs.MetricsSnapshot `json:"metrics"`
		SuccessRate float64              `json:"success_rate"`
	}](t, w)
	assert.Equal(t, 1.0, metrics.SuccessRate)
	assert.Equal(t, int64(1), metrics.Metrics.Builds.Builds, "only the async build is counted")
	assert.Equal(t, int64(len(testutil.SampleCorpus)), metrics.Metrics.Builds.Bytes)
	assert.Equal(t, int64(1), metrics.Metrics.ByType[model.JobTypeBuildCorpus].Completed)
}

func TestAnalyticsHandler(t *testing.T) {
	_, router := setupLoadedRouter(t)

	for _, word := range []string{"the", "ct", "xyzzyq", "xyzzyq"} {
		w := perform(router, http.MethodPost, "/corpora/sample/_correct", []byte(`{"word": "`+word+`"}`), "application/json")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := perform(router, http.MethodGet, "/analytics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	dashboard := decode[model.AnalyticsDashboard](t, w)
	assert.Equal(t, 4, dashboard.TotalQueries)
	assert.Equal(t, 2, dashboard.NoSuggestionQueries)
	assert.Equal(t, 1, dashboard.Tiers.Exact)
	assert.Equal(t, 1, dashboard.Tiers.SingleEdit)
	assert.Equal(t, 2, dashboard.Tiers.None)
	require.NotEmpty(t, dashboard.TopUnknownWords)
	assert.Equal(t, "xyzzyq", dashboard.TopUnknownWords[0].Word)
}

func TestHealthCheckHandler(t *testing.T) {
	_, router := setupLoadedRouter(t)

	w := perform(router, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]interface{}](t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.EqualValues(t, 1, resp["corpora"])
}

func TestRequestIDMiddleware(t *testing.T) {
	_, router := setupLoadedRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/corpora/missing", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", decode[APIError](t, w).RequestID)
}
