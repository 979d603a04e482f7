package chat

import (
	"errors"
	"net/http"
)

var (
	ErrNotConfigured = errors.New("chat API key not configured")
	ErrInvalidInput  = errors.New("invalid chat request")
	ErrUpstream      = errors.New("chat provider request failed")
)

// MapHTTPStatus maps chat errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
