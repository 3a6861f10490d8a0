package alerts

import (
	"errors"
	"net/http"
)

// ErrRetrieval indicates an alert source could not be fetched.
// No partial feed is produced when it is returned.
var ErrRetrieval = errors.New("alert source retrieval failed")

// ErrInvalidSeverity indicates a severity filter outside critical, warning, and info.
var ErrInvalidSeverity = errors.New("invalid severity")

// ErrInvalidOrganization indicates an organization id that is not a UUID.
var ErrInvalidOrganization = errors.New("invalid organization id")

// MapHTTPStatus maps alert errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrRetrieval) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrInvalidSeverity) || errors.Is(err, ErrInvalidOrganization) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
