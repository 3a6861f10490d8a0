package incidents

import (
	"errors"
	"net/http"
)

// Domain errors for incident operations.
var (
	ErrNotFound        = errors.New("incident not found")
	ErrDuplicate       = errors.New("incident already exists")
	ErrInvalidIncident = errors.New("invalid incident")
	ErrInvalidCategory = errors.New("invalid incident category")
	ErrAlreadyReported = errors.New("incident already reported")
	ErrSystemNotFound  = errors.New("ai system not found")
)

// MapHTTPStatus maps incident domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSystemNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrAlreadyReported) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidIncident) || errors.Is(err, ErrInvalidCategory) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
