package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Word validation errors
var (
	ErrEmptyWord        = fmt.Errorf("%w: word cannot be empty", ErrValidation)
	ErrEmptyTranslation = fmt.Errorf("%w: translation cannot be empty", ErrValidation)
	ErrNegativeCounter  = fmt.Errorf("%w: counters cannot be negative", ErrValidation)
)

// Word is one vocabulary item owned by a user. Success and Failed count the
// answers given for it in practice.
type Word struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Success     int       `json:"success"`
	Failed      int       `json:"failed"`
	AddedAt     time.Time `json:"addedAt"`
	UpdatedAt   time.Time `json:"-"`
}

// NewWord creates a word for userID with trimmed text and zeroed counters.
// The ID is assigned by the store.
func NewWord(userID uuid.UUID, word, translation string) (*Word, error) {
	now := time.Now().UTC()
	w := &Word{
		UserID:      userID,
		Word:        strings.TrimSpace(word),
		Translation: strings.TrimSpace(translation),
		AddedAt:     now,
		UpdatedAt:   now,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(w.Word) == "" {
		return ErrEmptyWord
	}
	if strings.TrimSpace(w.Translation) == "" {
		return ErrEmptyTranslation
	}
	if w.Success < 0 || w.Failed < 0 {
		return ErrNegativeCounter
	}
	return nil
}

// UpdateContent replaces the word and translation text, keeping counters.
func (w *Word) UpdateContent(word, translation string) error {
	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)
	if word == "" {
		return ErrEmptyWord
	}
	if translation == "" {
		return ErrEmptyTranslation
	}

	w.Word = word
	w.Translation = translation
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// RecordAnswer increments the counter matching the outcome.
func (w *Word) RecordAnswer(success bool) {
	if success {
		w.Success++
	} else {
		w.Failed++
	}
	w.UpdatedAt = time.Now().UTC()
}

// Practice tiers. Higher tiers are offered first when picking a random word.
const (
	TierPractised = iota
	TierStruggling
	TierNew
)

// Tier classifies the word for random selection: never answered words come
// first, then words that were answered wrong at least once, then the rest.
func (w *Word) Tier() int {
	switch {
	case w.Success == 0 && w.Failed == 0:
		return TierNew
	case w.Failed > 0:
		return TierStruggling
	default:
		return TierPractised
	}
}

// MatchesTranslation reports whether input matches expected, ignoring
// surrounding whitespace and letter case.
func MatchesTranslation(input, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(expected))
}
