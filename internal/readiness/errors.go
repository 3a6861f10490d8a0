package readiness

import (
	"errors"
	"net/http"
)

// ErrRetrieval indicates an input record set could not be fetched.
// The score is never computed from a partial record set.
var ErrRetrieval = errors.New("readiness input retrieval failed")

// ErrInvalidOrganization indicates an organization id that is not a UUID.
var ErrInvalidOrganization = errors.New("invalid organization id")

// MapHTTPStatus maps readiness errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrRetrieval) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrInvalidOrganization) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
