package service

import "fmt"

// WordServiceError carries the failed operation and wraps the cause.
type WordServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for WordServiceError.
func (e *WordServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("word service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("word service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *WordServiceError) Unwrap() error {
	return e.Err
}

// NewWordServiceError creates a new WordServiceError.
func NewWordServiceError(operation, message string, err error) *WordServiceError {
	return &WordServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
