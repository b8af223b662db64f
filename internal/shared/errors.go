package shared

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Failure taxonomy for the query pipeline. Callers classify upstream
// faults into exactly one of these so the retrieval cascade and the
// router can pick the right fallback without string matching.
var (
	// ErrTransportUnavailable means the ticket store itself is
	// unreachable. The retrieval cascade short-circuits on it.
	ErrTransportUnavailable = errors.New("store transport unavailable")

	// ErrEmbeddingUnavailable means the vectorization backend is down
	// while the store is still reachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrService covers any other upstream fault, treated as
	// potentially recoverable via the structured fallback tiers.
	ErrService = errors.New("upstream service error")

	// ErrGeneration means an LLM completion call failed.
	ErrGeneration = errors.New("generation failed")

	// ErrMalformedDecision means classifier output could not be decoded
	// into a routing decision.
	ErrMalformedDecision = errors.New("malformed routing decision")
)

type APIError struct {
	Code    string `json:"code" example:"invalid_request"`
	Message string `json:"message" example:"Invalid request body"`
	Details any    `json:"details,omitempty" swaggertype:"object"`
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

func (e *APIError) ToHTTP(status int) *echo.HTTPError {
	return echo.NewHTTPError(status, e)
}

func BadRequest(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusBadRequest)
}

func NotFound(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusNotFound)
}

func Conflict(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusConflict)
}

func InternalError(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusInternalServerError)
}
