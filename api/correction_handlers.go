package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-autocorrect/model"
)

const noSuggestionsMessage = "No suggestions found."

// CorrectionRequest is the body of a correction query.
type CorrectionRequest struct {
	Word           string `json:"word"`
	MaxSuggestions *int   `json:"max_suggestions,omitempty"` // Optional: override the corpus default
}

// SuggestionResponse is a ranked candidate as returned by the API.
type SuggestionResponse struct {
	Word        string  `json:"word"`
	Probability float64 `json:"probability"`
	Display     string  `json:"display"` // probability with four decimals
	Edits       int     `json:"edits"`
}

// CorrectionResponse is the response of a correction query.
type CorrectionResponse struct {
	Word       string               `json:"word"`
	Corpus     string               `json:"corpus"`
	Tier       string               `json:"tier"`
	Candidates []SuggestionResponse `json:"candidates"`
	Total      int                  `json:"total"`
	Message    string               `json:"message,omitempty"`
	Took       int64                `json:"took"`
	QueryId    string               `json:"query_id"`
}

func newCorrectionResponse(result model.CorrectionResult) CorrectionResponse {
	suggestions := make([]SuggestionResponse, len(result.Candidates))
	for i, candidate := range result.Candidates {
		suggestions[i] = SuggestionResponse{
			Word:        candidate.Word,
			Probability: candidate.Probability,
			Display:     candidate.Display(),
			Edits:       candidate.Edits,
		}
	}

	response := CorrectionResponse{
		Word:       result.Word,
		Corpus:     result.Corpus,
		Tier:       result.Tier.String(),
		Candidates: suggestions,
		Total:      len(suggestions),
		Took:       result.Took,
		QueryId:    result.QueryId,
	}
	if !result.HasSuggestions() {
		response.Message = noSuggestionsMessage
	}
	return response
}

// CorrectHandler suggests corrections for a single word.
// Request Body: CorrectionRequest
func (api *API) CorrectHandler(c *gin.Context) {
	name := c.Param("name")

	corrector, ok := api.engine.(corpusCorrector)
	if !ok {
		SendNotSupportedError(c, "Correction")
		return
	}

	var req CorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	word, result := ValidateWord(req.Word)
	if maxResult := ValidateMaxSuggestions(req.MaxSuggestions); maxResult.HasErrors() {
		result.Valid = false
		result.Errors = append(result.Errors, maxResult.Errors...)
	}
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	maxSuggestions := 0
	if req.MaxSuggestions != nil {
		maxSuggestions = *req.MaxSuggestions
	}

	correction, err := corrector.Correct(name, word, maxSuggestions)
	if err != nil {
		SendEngineError(c, name, "correction", err)
		return
	}

	c.JSON(http.StatusOK, newCorrectionResponse(correction))
}
