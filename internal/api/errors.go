// Package api provides HTTP handlers for the generation and chat endpoints.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmkrav/helper-api/internal/chat"
	"github.com/dmkrav/helper-api/internal/generation"
)

// MapErrorToStatusCode maps domain errors to the appropriate HTTP status
// code. Unrecognized errors map to 500 so that nothing internal leaks
// through an overly specific status.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, chat.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, generation.ErrBackendFailure),
		errors.Is(err, generation.ErrExtractionFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for the given error.
// The returned string never contains internal detail; the full error is
// logged separately with the trace ID.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, generation.ErrInvalidRequest):
		return "Invalid request"
	case errors.Is(err, chat.ErrSessionNotFound):
		return "Chat session not found or expired"
	case errors.Is(err, context.DeadlineExceeded):
		return "Generation timed out"
	case errors.Is(err, generation.ErrBackendFailure):
		return "Generation failed"
	case errors.Is(err, generation.ErrExtractionFailure):
		return "Failed to process attached file"
	default:
		return "An unexpected error occurred"
	}
}
