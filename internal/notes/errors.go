package notes

import (
	"errors"
	"net/http"
)

// Domain errors for note operations.
var (
	ErrNotFound   = errors.New("note not found")
	ErrEmptyTitle = errors.New("note title is required")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyTitle) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
