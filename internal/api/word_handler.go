package api

import (
	"log/slog"
	"net/http"

	"github.com/kheyfetsdan/wordsaveriii/internal/api/shared"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
	"github.com/kheyfetsdan/wordsaveriii/internal/platform/logger"
	"github.com/kheyfetsdan/wordsaveriii/internal/service"
)

// WordHandler serves the word endpoints. All routes require authentication.
type WordHandler struct {
	words  service.WordService
	logger *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(words service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WordHandler")
	}
	return &WordHandler{
		words:  words,
		logger: logger.With(slog.String("component", "word_handler")),
	}
}

// SaveWord handles POST /save-word.
func (h *WordHandler) SaveWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SaveWordRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	word, err := h.words.SaveWord(r.Context(), userID, req.Word, req.Translation)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// GetRandomWord handles POST /get-word. The body is optional.
func (h *WordHandler) GetRandomWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GetWordRequest
	if !decodeAndValidate(w, r, &req, true) {
		return
	}

	word, err := h.words.NextWord(r.Context(), userID, req.ExcludeID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// ListWords handles POST /get-words-by-user.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ListWordsRequest
	if !decodeAndValidate(w, r, &req, true) {
		return
	}

	q := domain.ListQuery{Search: req.Search, Page: req.Page, PageSize: req.PageSize}
	if req.SortingParam != "" {
		field, err := domain.ParseSortField(req.SortingParam)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		q.Sort.Field = field
	}
	if req.SortingDirection != "" {
		dir, err := domain.ParseSortDirection(req.SortingDirection)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		q.Sort.Direction = dir
	}

	page, err := h.words.ListWords(r.Context(), userID, q)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list words")
		return
	}

	resp := WordListResponse{WordList: make([]WordResponse, 0, len(page.Words)), Total: page.Total}
	for i := range page.Words {
		resp.WordList = append(resp.WordList, wordToResponse(&page.Words[i]))
	}

	log.Debug("listed words",
		slog.Int("page", req.Page),
		slog.Int("returned", len(resp.WordList)),
		slog.Int("total", page.Total))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetWord handles GET /word/{id}.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	word, err := h.words.GetWord(r.Context(), userID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// UpdateWord handles PUT /word.
func (h *WordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateWordRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	word, err := h.words.UpdateWord(r.Context(), userID, req.ID, req.Word, req.Translation)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// DeleteWord handles DELETE /delete-word/{id}.
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.words.DeleteWord(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "deleted"})
}

// UpdateWordStat handles PUT /word-stat/{id}.
func (h *WordHandler) UpdateWordStat(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req WordStatRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	if err := h.words.RecordAnswer(r.Context(), userID, id, *req.Success); err != nil {
		HandleAPIError(w, r, err, "Failed to update statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "updated"})
}

// QuizWord handles POST /quiz-word.
func (h *WordHandler) QuizWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req QuizWordRequest
	if !decodeAndValidate(w, r, &req, true) {
		return
	}

	quiz, err := h.words.QuizWord(r.Context(), userID, req.PreviousWord)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build quiz")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, quizToResponse(quiz))
}

// CountWords handles GET /words/count.
func (h *WordHandler) CountWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	n, err := h.words.CountWords(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to count words")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Total: n})
}

// ClearWords handles DELETE /words.
func (h *WordHandler) ClearWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	n, err := h.words.ClearWords(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to clear words")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ClearResponse{Deleted: n})
}
