package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-autocorrect/config"
	autocorrectErrors "github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/services"
)

const loadedMessage = "Dataset loaded successfully!"

// readCorpusBody returns the uploaded corpus: the multipart field "file" when the
// request is a form upload, otherwise the raw body.
func readCorpusBody(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		return readFormFile(header)
	}
	return io.ReadAll(c.Request.Body)
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (api *API) sendBodyError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		SendPayloadTooLargeError(c, tooLarge.Limit)
		return
	}
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Failed to read corpus upload: "+err.Error())
}

// LoadCorpusHandler uploads a corpus and builds its model.
// Query: max_suggestions, workers, async=true (202 + job id), replace=false (409 when it exists).
func (api *API) LoadCorpusHandler(c *gin.Context) {
	name := c.Param("name")
	if result := ValidateCorpusName(name); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	settings, result := ParseCorpusSettingsQuery(c, api.cfg.CorpusDefaults(name))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	data, err := readCorpusBody(c)
	if err != nil {
		api.sendBodyError(c, err)
		return
	}

	if c.Query("async") == "true" {
		asyncEngine, ok := api.engine.(services.CorpusManagerWithAsync)
		if !ok {
			SendNotSupportedError(c, "Asynchronous corpus loading")
			return
		}
		jobID, err := asyncEngine.LoadCorpusAsync(settings, data)
		if err != nil {
			var validationErr *autocorrectErrors.ValidationError
			if errors.As(err, &validationErr) {
				SendEngineError(c, name, operationCorpusLoad, err)
				return
			}
			SendJobExecutionError(c, "build corpus", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"status":     "accepted",
			"message":    "Corpus build started for '" + name + "'",
			"job_id":     jobID,
			"size_bytes": len(data),
		})
		return
	}

	load := api.engine.LoadCorpus
	status := http.StatusOK
	if c.Query("replace") == "false" {
		creator, ok := api.engine.(corpusCreator)
		if !ok {
			SendNotSupportedError(c, "Corpus creation without replacement")
			return
		}
		load = creator.CreateCorpus
		status = http.StatusCreated
	}

	stats, err := load(settings, data)
	if err != nil {
		SendEngineError(c, name, operationCorpusLoad, err)
		return
	}

	c.JSON(status, gin.H{
		"message": loadedMessage,
		"corpus":  stats,
	})
}

// ListCorporaHandler lists all loaded corpora.
func (api *API) ListCorporaHandler(c *gin.Context) {
	names := api.engine.ListCorpora()
	c.JSON(http.StatusOK, gin.H{"corpora": names, "count": len(names)})
}

// GetCorpusHandler returns the statistics and settings of a corpus.
func (api *API) GetCorpusHandler(c *gin.Context) {
	name := c.Param("name")
	accessor, err := api.engine.GetCorpus(name)
	if err != nil {
		SendEngineError(c, name, "corpus lookup", err)
		return
	}
	c.JSON(http.StatusOK, accessor.Stats())
}

// DeleteCorpusHandler deletes a corpus; async=true runs it as a job.
func (api *API) DeleteCorpusHandler(c *gin.Context) {
	name := c.Param("name")

	if c.Query("async") == "true" {
		asyncEngine, ok := api.engine.(services.CorpusManagerWithAsync)
		if !ok {
			SendNotSupportedError(c, "Asynchronous corpus deletion")
			return
		}
		if _, err := api.engine.GetCorpus(name); err != nil {
			SendEngineError(c, name, "corpus deletion", err)
			return
		}
		jobID, err := asyncEngine.DeleteCorpusAsync(name)
		if err != nil {
			SendJobExecutionError(c, "delete corpus", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Corpus deletion started for '" + name + "'",
			"job_id":  jobID,
		})
		return
	}

	if err := api.engine.DeleteCorpus(name); err != nil {
		SendEngineError(c, name, "corpus deletion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Corpus '" + name + "' deleted successfully"})
}

// CorpusSettingsUpdate is the body of a settings update; omitted fields keep their value.
type CorpusSettingsUpdate struct {
	MaxSuggestions *int `json:"max_suggestions,omitempty"`
	Workers        *int `json:"workers,omitempty"`
}

// UpdateCorpusSettingsHandler changes max_suggestions or workers without rebuilding the model.
func (api *API) UpdateCorpusSettingsHandler(c *gin.Context) {
	name := c.Param("name")

	updater, ok := api.engine.(settingsUpdater)
	if !ok {
		SendNotSupportedError(c, "Settings updates")
		return
	}

	accessor, err := api.engine.GetCorpus(name)
	if err != nil {
		SendEngineError(c, name, "settings update", err)
		return
	}

	var update CorpusSettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	settings := accessor.Settings()
	result := ValidateMaxSuggestions(update.MaxSuggestions)
	if update.MaxSuggestions != nil {
		settings.MaxSuggestions = *update.MaxSuggestions
	}
	if update.Workers != nil {
		if *update.Workers < 1 || *update.Workers > config.MaxWorkers {
			result.AddError("workers", fmt.Sprintf("workers must be between 1 and %d", config.MaxWorkers))
		}
		settings.Workers = *update.Workers
	}
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	updated, err := updater.UpdateCorpusSettings(name, settings)
	if err != nil {
		SendEngineError(c, name, "settings update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings updated for corpus '" + name + "'",
		"settings": updated,
	})
}

// GetVocabularyHandler lists vocabulary words starting with prefix, most frequent first.
func (api *API) GetVocabularyHandler(c *gin.Context) {
	name := c.Param("name")

	limit, result := ParseVocabularyLimit(c.Query("limit"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	accessor, err := api.engine.GetCorpus(name)
	if err != nil {
		SendEngineError(c, name, "vocabulary lookup", err)
		return
	}

	prefix := c.Query("prefix")
	words := accessor.WordsWithPrefix(prefix, limit)
	c.JSON(http.StatusOK, gin.H{
		"corpus": name,
		"prefix": prefix,
		"words":  words,
		"total":  len(words),
	})
}
