package reports

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/posture/pkg/storage"
)

// Domain errors for report operations.
var (
	ErrRetrieval      = errors.New("snapshot retrieval failed")
	ErrMissingContext = errors.New("organization id is required")
	ErrInvalidOrg     = errors.New("invalid organization id")
	ErrNotFound       = errors.New("report not found")
	ErrInvalidKey     = errors.New("invalid report key")
)

// MapHTTPStatus maps report domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingContext) || errors.Is(err, ErrInvalidOrg) || errors.Is(err, ErrInvalidKey) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrRetrieval) {
		return http.StatusServiceUnavailable
	}
	return storage.MapHTTPStatus(err)
}
