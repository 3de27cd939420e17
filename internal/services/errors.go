package services

import "errors"

var (
	// ErrValidation marks malformed or missing input. Nothing is written.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing application or job.
	ErrNotFound = errors.New("not found")
	// ErrAnalysisFailure marks an evaluator call that errored, timed out or
	// returned output that does not match its schema.
	ErrAnalysisFailure = errors.New("analysis failed")
	// ErrFetchFailure marks a resume that could not be read from storage.
	ErrFetchFailure = errors.New("resume fetch failed")
	// ErrPersistence marks a failed status or result write.
	ErrPersistence = errors.New("persistence failed")
	// ErrGenerationFailure marks an interview question run with no usable output.
	ErrGenerationFailure = errors.New("generation failed")
	// ErrScreeningInProgress is returned when another run holds the application.
	ErrScreeningInProgress = errors.New("screening already in progress")
)
