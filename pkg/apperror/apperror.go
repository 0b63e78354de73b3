package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMethodNotAllowed = errors.New("method not allowed")

	ErrDuplicateMetric = errors.New("metric already registered")
	ErrLabelArity      = errors.New("label values do not match declared label names")
	ErrUnknownLabel    = errors.New("label name not declared")
)

// HTTPStatus maps an error returned by a handler to the response status.
// A nil error maps to 200.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
