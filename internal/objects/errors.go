package objects

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("water object not found")
	ErrDuplicate    = errors.New("water object already exists")
	ErrInvalidInput = errors.New("invalid water object")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("passport must be a readable PDF")
	ErrNoPassport   = errors.New("water object has no passport")
)

// MapHTTPStatus maps water object errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoPassport):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
