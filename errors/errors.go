package errors

import (
	stderrors "errors"
	"fmt"
)

// Failure kinds. Every stage error wraps exactly one of them.
var (
	ErrValidation     = fmt.Errorf("validation error")
	ErrExtraction     = fmt.Errorf("extraction error")
	ErrGeneration     = fmt.Errorf("generation error")
	ErrClassification = fmt.Errorf("classification error")
)

var (
	ErrEmptyResponse       = fmt.Errorf("the AI model returned an empty response")
	ErrUnsupportedLanguage = fmt.Errorf("no sentiment lexicon for detected language")
	ErrNoTextLayer         = fmt.Errorf("no text content found in PDF")
	ErrAnalysisNotFound    = fmt.Errorf("analysis not found")
)

// StageError carries a caller-facing message, the failure kind and the cause.
type StageError struct {
	Kind    error
	Message string
	Err     error
}

func (e *StageError) Error() string {
	return e.Message
}

func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Validation(message string) error {
	return &StageError{Kind: ErrValidation, Message: message}
}

func Extraction(message string, cause error) error {
	return &StageError{Kind: ErrExtraction, Message: message, Err: cause}
}

func Generation(message string, cause error) error {
	return &StageError{Kind: ErrGeneration, Message: message, Err: cause}
}

func Classification(message string, cause error) error {
	return &StageError{Kind: ErrClassification, Message: message, Err: cause}
}

// Message returns the caller-facing message of a StageError, or err.Error().
func Message(err error) string {
	var stageErr *StageError
	if stderrors.As(err, &stageErr) {
		return stageErr.Message
	}
	return err.Error()
}
