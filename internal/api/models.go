package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
)

// RegisterRequest defines the payload for the registration endpoint.
// ConfirmPassword is optional; when present it must equal Password.
type RegisterRequest struct {
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	UserID uuid.UUID `json:"userId"`
	Token  string    `json:"token"`
}

// SaveWordRequest is the payload of POST /save-word.
type SaveWordRequest struct {
	Word        string `json:"word"        validate:"required,max=255"`
	Translation string `json:"translation" validate:"required,max=255"`
}

// UpdateWordRequest is the payload of PUT /word.
type UpdateWordRequest struct {
	ID          int64  `json:"id"          validate:"required,gt=0"`
	Word        string `json:"word"        validate:"required,max=255"`
	Translation string `json:"translation" validate:"required,max=255"`
}

// GetWordRequest is the optional payload of POST /get-word.
type GetWordRequest struct {
	ExcludeID int64 `json:"excludeId" validate:"gte=0"`
}

// ListWordsRequest is the payload of POST /get-words-by-user. Page is 0-based.
type ListWordsRequest struct {
	SortingParam     string `json:"sortingParam"`
	SortingDirection string `json:"sortingDirection"`
	Page             int    `json:"page"     validate:"gte=0"`
	PageSize         int    `json:"pageSize" validate:"gte=0,lte=100"`
	Search           string `json:"search"   validate:"max=255"`
}

// WordStatRequest is the payload of PUT /word-stat/{id}.
type WordStatRequest struct {
	Success *bool `json:"success" validate:"required"`
}

// QuizWordRequest is the payload of POST /quiz-word.
type QuizWordRequest struct {
	PreviousWord string `json:"previousWord"`
}

// WordResponse is the wire form of a word.
type WordResponse struct {
	ID          int64     `json:"id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Success     int       `json:"success"`
	Failed      int       `json:"failed"`
	AddedAt     time.Time `json:"addedAt"`
}

// WordListResponse is one page of words plus the total number of matches.
type WordListResponse struct {
	WordList []WordResponse `json:"wordList"`
	Total    int            `json:"total"`
}

// QuizWordResponse is a multiple-choice question.
type QuizWordResponse struct {
	ID              int64  `json:"id"`
	Word            string `json:"word"`
	TrueTranslation string `json:"trueTranslation"`
	Translation1    string `json:"translation1"`
	Translation2    string `json:"translation2"`
	Translation3    string `json:"translation3"`
}

// CountResponse reports the number of saved words.
type CountResponse struct {
	Total int `json:"total"`
}

// ClearResponse reports how many words were deleted.
type ClearResponse struct {
	Deleted int `json:"deleted"`
}

// StatusResponse is a bare acknowledgement.
type StatusResponse struct {
	Status string `json:"status"`
}

func wordToResponse(w *domain.Word) WordResponse {
	return WordResponse{
		ID:          w.ID,
		Word:        w.Word,
		Translation: w.Translation,
		Success:     w.Success,
		Failed:      w.Failed,
		AddedAt:     w.AddedAt.UTC(),
	}
}

func quizToResponse(q *domain.QuizWord) QuizWordResponse {
	return QuizWordResponse{
		ID:              q.ID,
		Word:            q.Word,
		TrueTranslation: q.TrueTranslation,
		Translation1:    q.Distractors[0],
		Translation2:    q.Distractors[1],
		Translation3:    q.Distractors[2],
	}
}
