package store

import (
	"errors"
	"fmt"
)

// Common store errors
var (
	// ErrNotFound indicates that the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate indicates a unique constraint was violated.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity indicates the database rejected the entity's data.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed indicates a transaction could not be completed.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific errors wrap the generic ones so callers can match either.
var (
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrWordDuplicated = fmt.Errorf("%w: word", ErrDuplicate)
)

// IsNotFoundError reports whether err is any not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any duplicate error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError carries the entity and operation that failed.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "word")
	Operation string // The operation that failed (e.g., "create", "list")
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
