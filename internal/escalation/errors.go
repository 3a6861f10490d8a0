package escalation

import (
	"errors"
	"net/http"
)

// Domain errors for verification operations.
var (
	ErrNotFound       = errors.New("verification not found")
	ErrDuplicate      = errors.New("verification already exists")
	ErrSystemNotFound = errors.New("ai system not found")
	ErrInvalidVariant = errors.New("invalid verification variant")
	ErrInvalidStatus  = errors.New("invalid verification status")
	ErrInvalidRequest = errors.New("invalid verification request")
)

// MapHTTPStatus maps verification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSystemNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidVariant) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
