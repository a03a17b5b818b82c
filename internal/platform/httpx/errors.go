// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for domain layer.
var (
	// ErrUnauthenticated indicates that no credential was presented.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden indicates the credential or principal lacks access.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates a malformed or unknown-field payload.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a duplicate unique key, e.g. duplicate email.
	ErrConflict = errors.New("duplicate entry")
	// ErrTransient indicates an unexpected persistence failure.
	ErrTransient = errors.New("transient failure")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
//
// Conflict maps to 400, not 409: clients of the original API depend on
// duplicate-email registration returning a Bad Request.
func RespondError(w http.ResponseWriter, err error) {
	Problem(w, StatusFor(err), titleFor(err), detailFor(err))
}

// StatusFor returns the boundary status code for a domain error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func titleFor(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "Not Authenticated"
	case errors.Is(err, ErrForbidden):
		return "Forbidden"
	case errors.Is(err, ErrNotFound):
		return "Not Found"
	case errors.Is(err, ErrValidation):
		return "Validation Failed"
	case errors.Is(err, ErrConflict):
		return "Duplicate"
	default:
		return "Internal Error"
	}
}

func detailFor(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		// Never leak persistence internals to the client.
		return ""
	}
	return err.Error()
}
