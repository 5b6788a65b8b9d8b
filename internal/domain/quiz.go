package domain

import (
	"errors"
	"fmt"
	"strings"
)

// A quiz question shows the true translation among QuizDistractors wrong ones.
const (
	QuizDistractors = 3
	QuizCandidates  = QuizDistractors + 1
)

// ErrInsufficientWords is returned when a user does not own enough distinct
// words to build a quiz question.
var ErrInsufficientWords = errors.New("not enough words for a quiz")

// QuizWord is a multiple-choice question for one word.
type QuizWord struct {
	ID              int64
	Word            string
	TrueTranslation string
	Distractors     [QuizDistractors]string
}

// NewQuizWord builds a question from w and candidate distractor translations.
// Candidates equal to the true translation or to each other (ignoring case)
// are skipped. It fails with ErrInsufficientWords when fewer than
// QuizDistractors usable candidates remain.
func NewQuizWord(w Word, candidates []string) (*QuizWord, error) {
	q := &QuizWord{
		ID:              w.ID,
		Word:            w.Word,
		TrueTranslation: w.Translation,
	}

	seen := map[string]struct{}{strings.ToLower(strings.TrimSpace(w.Translation)): {}}
	n := 0
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		q.Distractors[n] = c
		n++
		if n == QuizDistractors {
			return q, nil
		}
	}

	return nil, fmt.Errorf("%w: found %d of %d distractors", ErrInsufficientWords, n, QuizDistractors)
}

// Candidates returns the true translation followed by the distractors.
// Callers shuffle before presenting.
func (q QuizWord) Candidates() []string {
	out := make([]string, 0, QuizCandidates)
	out = append(out, q.TrueTranslation)
	return append(out, q.Distractors[:]...)
}
