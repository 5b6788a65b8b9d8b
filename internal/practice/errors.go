package practice

import (
	"context"
	"errors"
	"fmt"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
)

var (
	// ErrEmptyAnswer is returned when the typed answer is blank.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrAlreadyAnswered is returned for a second answer in the same round.
	ErrAlreadyAnswered = errors.New("round already answered")

	// ErrNotReady is returned when there is no word to answer.
	ErrNotReady = errors.New("no word loaded")

	// ErrWrongMode is returned when an operation does not belong to the
	// engine's mode.
	ErrWrongMode = errors.New("operation not available in this mode")

	// ErrInvalidChoice is returned for a candidate index out of range.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrChoiceDisabled is returned when a disabled candidate is selected.
	ErrChoiceDisabled = errors.New("choice already tried")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("practice closed")
)

// Describe turns a load failure into the message shown to the user.
func Describe(mode Mode, err error) string {
	var (
		transportErr *client.TransportError
		apiErr       *client.APIError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, client.ErrNotAuthenticated):
		return "not authenticated"
	case errors.Is(err, client.ErrInsufficientWords):
		return "add at least 4 words to start a quiz"
	case errors.Is(err, client.ErrNotFound):
		if mode == Quiz {
			return "add at least 4 words to start a quiz"
		}
		return "no words saved"
	case errors.As(err, &transportErr):
		if errors.Is(transportErr.Err, context.DeadlineExceeded) {
			return "network error: request timed out"
		}
		return fmt.Sprintf("network error: %v", transportErr.Err)
	case errors.As(err, &apiErr):
		return fmt.Sprintf("server error (%d): %s", apiErr.Status, apiErr.Message)
	}
	return err.Error()
}
