package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline stage failure. Each kind maps to a distinct
// user-visible message; they are never collapsed into one generic error.
type Kind string

const (
	KindLoad            Kind = "load"
	KindExtraction      Kind = "extraction"
	KindStandardization Kind = "standardization"
	KindRelevancy       Kind = "relevancy_analysis"
	KindPersistence     Kind = "persistence"
)

// StageError is the single workflow error category. It wraps the underlying
// fault and records which stage produced it.
type StageError struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// UserMessage returns the user-visible message for this failure kind.
func (e *StageError) UserMessage() string {
	switch e.Kind {
	case KindLoad:
		return "Could not read the resume document."
	case KindExtraction:
		return "Could not extract structured information from the resume."
	case KindStandardization:
		return "Could not standardize the extracted resume data."
	case KindRelevancy:
		return "Could not score the resume against the job description."
	case KindPersistence:
		return "Could not save the screening result."
	default:
		return "Resume processing failed."
	}
}

func newStageError(kind Kind, stage string, err error) *StageError {
	return &StageError{Kind: kind, Stage: stage, Err: err}
}

// KindOf extracts the failure kind from err.
// Parameters:
//   - err: error returned by a pipeline run.
//
// Returns:
//   - Kind: the stage failure kind, empty for unclassified errors.
//   - bool: true if err is (or wraps) a StageError.
func KindOf(err error) (Kind, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

// UserMessage maps any pipeline error to its user-visible message.
// Unclassified faults get a generic message carrying the item name.
func UserMessage(err error, item string) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.UserMessage()
	}
	return fmt.Sprintf("Unexpected error while processing %s.", item)
}
