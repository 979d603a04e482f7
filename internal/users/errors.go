package users

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrDuplicate       = errors.New("login already taken")
	ErrInvalidInput    = errors.New("invalid user")
	ErrInvalidPassword = errors.New("wrong password")
)

// MapHTTPStatus maps user errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
