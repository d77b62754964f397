package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrCorpusNotFound is returned when no corpus is loaded under a name
	ErrCorpusNotFound = errors.New("corpus not found")

	// ErrCorpusAlreadyExists is returned when a corpus must not be replaced but already exists
	ErrCorpusAlreadyExists = errors.New("corpus already exists")

	// ErrInvalidEncoding is returned when corpus bytes are not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// CorpusNotFoundError represents a corpus not found error with context
type CorpusNotFoundError struct {
	Name string
}

func (e *CorpusNotFoundError) Error() string {
	return fmt.Sprintf("corpus named '%s' not found", e.Name)
}

func (e *CorpusNotFoundError) Is(target error) bool {
	return target == ErrCorpusNotFound
}

// NewCorpusNotFoundError creates a new CorpusNotFoundError
func NewCorpusNotFoundError(name string) *CorpusNotFoundError {
	return &CorpusNotFoundError{Name: name}
}

// CorpusAlreadyExistsError represents a corpus already exists error with context
type CorpusAlreadyExistsError struct {
	Name string
}

func (e *CorpusAlreadyExistsError) Error() string {
	return fmt.Sprintf("corpus named '%s' already exists", e.Name)
}

func (e *CorpusAlreadyExistsError) Is(target error) bool {
	return target == ErrCorpusAlreadyExists
}

// NewCorpusAlreadyExistsError creates a new CorpusAlreadyExistsError
func NewCorpusAlreadyExistsError(name string) *CorpusAlreadyExistsError {
	return &CorpusAlreadyExistsError{Name: name}
}

// DecodingError reports corpus bytes that could not be decoded as UTF-8.
// Offset is the number of bytes that decoded cleanly before the failure.
type DecodingError struct {
	Offset int
	Err    error
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corpus is not valid UTF-8 at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("corpus is not valid UTF-8 at byte %d", e.Offset)
}

func (e *DecodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// NewDecodingError creates a new DecodingError
func NewDecodingError(offset int, err error) *DecodingError {
	return &DecodingError{Offset: offset, Err: err}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
