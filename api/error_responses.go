package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	autocorrectErrors "github.com/gcbaptista/go-autocorrect/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeCorpusNotFound   ErrorCode = "CORPUS_NOT_FOUND"
	ErrorCodeJobNotFound      ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeCorpusExists     ErrorCode = "CORPUS_ALREADY_EXISTS"
	ErrorCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidEncoding  ErrorCode = "INVALID_ENCODING"
	ErrorCodePayloadTooLarge  ErrorCode = "PAYLOAD_TOO_LARGE"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeCorpusLoadFailed   ErrorCode = "CORPUS_LOAD_FAILED"
	ErrorCodeJobExecutionFailed ErrorCode = "JOB_EXECUTION_FAILED"
	ErrorCodeNotSupported       ErrorCode = "NOT_SUPPORTED"
)

// operationCorpusLoad names corpus uploads in SendEngineError
const operationCorpusLoad = "corpus load"

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendCorpusNotFoundError sends a standardized corpus not found error
func SendCorpusNotFoundError(c *gin.Context, name string) {
	SendError(c, http.StatusNotFound, ErrorCodeCorpusNotFound,
		"Corpus '"+name+"' not found")
}

// SendJobNotFoundError sends a standardized job not found error
func SendJobNotFoundError(c *gin.Context, jobID string) {
	SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
		"Job '"+jobID+"' not found")
}

// SendCorpusExistsError sends a standardized corpus already exists error
func SendCorpusExistsError(c *gin.Context, name string) {
	SendError(c, http.StatusConflict, ErrorCodeCorpusExists,
		"Corpus '"+name+"' already exists")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInvalidEncodingError reports a corpus upload that is not valid UTF-8
func SendInvalidEncodingError(c *gin.Context, err *autocorrectErrors.DecodingError) {
	SendError(c, http.StatusUnprocessableEntity, ErrorCodeInvalidEncoding,
		"Corpus must be UTF-8 encoded text",
		ErrorDetail{Field: "body", Message: fmt.Sprintf("invalid UTF-8 at byte %d", err.Offset), Code: "DECODING_ERROR"})
}

// SendPayloadTooLargeError reports a body over the configured upload limit
func SendPayloadTooLargeError(c *gin.Context, limit int64) {
	SendError(c, http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge,
		fmt.Sprintf("Request body exceeds the %d byte limit", limit))
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendCorpusLoadError reports a corpus build that failed after its input was accepted
func SendCorpusLoadError(c *gin.Context, corpusName string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeCorpusLoadFailed,
		"Failed to load corpus '"+corpusName+"': "+err.Error())
}

// SendJobExecutionError sends a standardized job execution error
func SendJobExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed,
		"Failed to start "+operation+" job: "+err.Error())
}

// SendNotSupportedError reports a feature the configured corpus manager lacks
func SendNotSupportedError(c *gin.Context, feature string) {
	SendError(c, http.StatusNotImplemented, ErrorCodeNotSupported,
		feature+" not supported by this engine")
}

// SendEngineError maps errors returned by the corpus manager to responses
func SendEngineError(c *gin.Context, corpusName, operation string, err error) {
	var decodeErr *autocorrectErrors.DecodingError
	var validationErr *autocorrectErrors.ValidationError

	switch {
	case errors.As(err, &decodeErr):
		SendInvalidEncodingError(c, decodeErr)
	case errors.Is(err, autocorrectErrors.ErrCorpusNotFound):
		SendCorpusNotFoundError(c, corpusName)
	case errors.Is(err, autocorrectErrors.ErrCorpusAlreadyExists):
		SendCorpusExistsError(c, corpusName)
	case errors.As(err, &validationErr):
		result := &ValidationResult{Valid: true}
		for _, msg := range strings.Split(validationErr.Message, "; ") {
			result.AddError(validationErr.Field, msg)
		}
		SendValidationError(c, result)
	case errors.Is(err, autocorrectErrors.ErrJobNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeJobNotFound, err.Error())
	case operation == operationCorpusLoad:
		SendCorpusLoadError(c, corpusName, err)
	default:
		SendInternalError(c, operation, err)
	}
}
