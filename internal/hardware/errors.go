package hardware

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("hardware not registered")
	ErrInvalidInput = errors.New("invalid hardware command")
)

// MapHTTPStatus maps hardware errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
