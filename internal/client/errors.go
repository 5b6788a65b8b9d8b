package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when no token is available or the
	// server answered 401. No request is sent in the first case.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound matches a 404 response.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate matches a 409 response.
	ErrDuplicate = errors.New("already exists")

	// ErrInsufficientWords matches a 412 response from the quiz endpoint.
	ErrInsufficientWords = errors.New("not enough words")

	// ErrValidation is returned for input rejected before sending.
	ErrValidation = errors.New("invalid input")
)

// TransportError wraps a failure to get any HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response. Message is the server's error text, or
// the status text when the body carried none.
type APIError struct {
	Status  int
	Message string
	TraceID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Is maps well-known statuses to the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotAuthenticated:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrDuplicate:
		return e.Status == http.StatusConflict
	case ErrInsufficientWords:
		return e.Status == http.StatusPreconditionFailed
	}
	return false
}

func validationError(field string) error {
	return fmt.Errorf("%w: %s cannot be empty", ErrValidation, field)
}
