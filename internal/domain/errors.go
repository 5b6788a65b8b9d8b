package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidSort is returned when a sort field or direction is unknown.
	ErrInvalidSort = errors.New("invalid sort parameter")

	// ErrInvalidPage is returned when a page index or size is out of range.
	ErrInvalidPage = errors.New("invalid page parameter")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
