package client

import (
	"time"

	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
)

// Word is a saved word as returned by the server.
type Word struct {
	ID          int64     `json:"id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Success     int       `json:"success"`
	Failed      int       `json:"failed"`
	AddedAt     time.Time `json:"addedAt"`
}

// QuizWord is a multiple-choice question.
type QuizWord struct {
	ID              int64  `json:"id"`
	Word            string `json:"word"`
	TrueTranslation string `json:"trueTranslation"`
	Translation1    string `json:"translation1"`
	Translation2    string `json:"translation2"`
	Translation3    string `json:"translation3"`
}

// Candidates returns the true translation followed by the three distractors.
func (q QuizWord) Candidates() []string {
	return []string{q.TrueTranslation, q.Translation1, q.Translation2, q.Translation3}
}

// ListRequest selects one page of the dictionary. Page is 0-based.
type ListRequest struct {
	Search   string
	Sort     domain.SortKey
	Page     int
	PageSize int
}

// WordList is one page of words and the number of all matches.
type WordList struct {
	Words []Word `json:"wordList"`
	Total int    `json:"total"`
}

type authRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
}

type saveWordRequest struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

type updateWordRequest struct {
	ID          int64  `json:"id"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

type getWordRequest struct {
	ExcludeID int64 `json:"excludeId,omitempty"`
}

type listRequest struct {
	SortingParam     string `json:"sortingParam"`
	SortingDirection string `json:"sortingDirection"`
	Page             int    `json:"page"`
	PageSize         int    `json:"pageSize"`
	Search           string `json:"search,omitempty"`
}

type statRequest struct {
	Success bool `json:"success"`
}

type quizRequest struct {
	PreviousWord string `json:"previousWord"`
}

type countResponse struct {
	Total int `json:"total"`
}

type clearResponse struct {
	Deleted int `json:"deleted"`
}

type errorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}
