package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidRequest is returned when the request kind is unknown or a
	// required payload field is missing.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrBackendFailure is returned when the model call fails or returns a
	// payload that cannot be parsed against the requested schema.
	ErrBackendFailure = errors.New("generation backend failure")

	// ErrExtractionFailure is returned when an attached file cannot be
	// converted to text. Callers absorb it into an empty-text fallback so a
	// single bad attachment does not fail the whole request.
	ErrExtractionFailure = errors.New("file extraction failure")

	// ErrInvalidConfig is returned when the engine or backend configuration
	// is invalid.
	ErrInvalidConfig = errors.New("invalid generation configuration")
)
