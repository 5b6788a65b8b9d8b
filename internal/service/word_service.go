package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
	"github.com/kheyfetsdan/wordsaveriii/internal/platform/logger"
	"github.com/kheyfetsdan/wordsaveriii/internal/store"
)

// WordService provides the word operations behind the HTTP API. Every method
// acts on the words of one user.
type WordService interface {
	// SaveWord validates and stores a new pair.
	// Returns store.ErrWordDuplicated if the user already has it.
	SaveWord(ctx context.Context, userID uuid.UUID, word, translation string) (*domain.Word, error)

	// GetWord returns one word or store.ErrWordNotFound.
	GetWord(ctx context.Context, userID uuid.UUID, id int64) (*domain.Word, error)

	// UpdateWord replaces the text of an existing word, keeping its counters.
	UpdateWord(ctx context.Context, userID uuid.UUID, id int64, word, translation string) (*domain.Word, error)

	// DeleteWord removes one word.
	DeleteWord(ctx context.Context, userID uuid.UUID, id int64) error

	// RecordAnswer increments the success or failed counter of a word.
	RecordAnswer(ctx context.Context, userID uuid.UUID, id int64, success bool) error

	// ListWords returns one sorted, optionally filtered page.
	ListWords(ctx context.Context, userID uuid.UUID, q domain.ListQuery) (*domain.WordPage, error)

	// NextWord picks a word to practise, avoiding excludeID when possible.
	// Returns store.ErrWordNotFound if the user has no words.
	NextWord(ctx context.Context, userID uuid.UUID, excludeID int64) (*domain.Word, error)

	// QuizWord builds a multiple-choice question, avoiding previousWord when
	// possible. Returns domain.ErrInsufficientWords when the user does not have
	// enough distinct words.
	QuizWord(ctx context.Context, userID uuid.UUID, previousWord string) (*domain.QuizWord, error)

	// CountWords returns how many words the user owns.
	CountWords(ctx context.Context, userID uuid.UUID) (int, error)

	// ClearWords deletes every word of the user and returns how many there were.
	ClearWords(ctx context.Context, userID uuid.UUID) (int, error)
}

type wordServiceImpl struct {
	words  store.WordStore
	db     store.TxBeginner
	logger *slog.Logger
}

var _ WordService = (*wordServiceImpl)(nil)

// NewWordService creates a WordService.
// It returns an error if any of the required dependencies are nil.
func NewWordService(words store.WordStore, db store.TxBeginner, logger *slog.Logger) (WordService, error) {
	if words == nil {
		return nil, fmt.Errorf("%w: words cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, fmt.Errorf("%w: db cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &wordServiceImpl{
		words:  words,
		db:     db,
		logger: logger.With(slog.String("component", "word_service")),
	}, nil
}

func (s *wordServiceImpl) SaveWord(ctx context.Context, userID uuid.UUID, word, translation string) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	w, err := domain.NewWord(userID, word, translation)
	if err != nil {
		return nil, err
	}

	if err := s.words.Create(ctx, w); err != nil {
		if errors.Is(err, store.ErrWordDuplicated) {
			log.Debug("word already saved", slog.String("user_id", userID.String()))
			return nil, err
		}
		log.Error("failed to save word",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewWordServiceError("save", "failed to save word", err)
	}

	log.Debug("word saved",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", w.ID))
	return w, nil
}

func (s *wordServiceImpl) GetWord(ctx context.Context, userID uuid.UUID, id int64) (*domain.Word, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: word id must be positive", domain.ErrInvalidID)
	}

	w, err := s.words.GetByID(ctx, userID, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewWordServiceError("get", "failed to retrieve word", err)
	}
	return w, nil
}

// UpdateWord reads and writes inside one transaction so the returned counters
// belong to the row that was updated.
func (s *wordServiceImpl) UpdateWord(
	ctx context.Context,
	userID uuid.UUID,
	id int64,
	word, translation string,
) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id <= 0 {
		return nil, fmt.Errorf("%w: word id must be positive", domain.ErrInvalidID)
	}

	var updated *domain.Word
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		txWords := s.words.WithTx(tx)

		w, err := txWords.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := w.UpdateContent(word, translation); err != nil {
			return err
		}
		if err := txWords.Update(ctx, w); err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || store.IsNotFoundError(err) || store.IsDuplicateError(err) {
			return nil, err
		}
		log.Error("failed to update word",
			slog.String("error", err.Error()),
			slog.Int64("word_id", id))
		return nil, NewWordServiceError("update", "failed to update word", err)
	}

	return updated, nil
}

func (s *wordServiceImpl) DeleteWord(ctx context.Context, userID uuid.UUID, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: word id must be positive", domain.ErrInvalidID)
	}

	if err := s.words.Delete(ctx, userID, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewWordServiceError("delete", "failed to delete word", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("word deleted", slog.Int64("word_id", id))
	return nil
}

func (s *wordServiceImpl) RecordAnswer(ctx context.Context, userID uuid.UUID, id int64, success bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: word id must be positive", domain.ErrInvalidID)
	}

	if err := s.words.IncrementStat(ctx, userID, id, success); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewWordServiceError("record_answer", "failed to update statistics", err)
	}
	return nil
}

func (s *wordServiceImpl) ListWords(ctx context.Context, userID uuid.UUID, q domain.ListQuery) (*domain.WordPage, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	page, err := s.words.List(ctx, userID, q)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list words",
			slog.String("error", err.Error()),
			slog.String("sort", q.Sort.String()),
			slog.Int("page", q.Page))
		return nil, NewWordServiceError("list", "failed to list words", err)
	}
	return page, nil
}

func (s *wordServiceImpl) NextWord(ctx context.Context, userID uuid.UUID, excludeID int64) (*domain.Word, error) {
	w, err := s.words.Random(ctx, userID, store.RandomFilter{ExcludeID: excludeID})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewWordServiceError("next_word", "failed to pick a word", err)
	}
	return w, nil
}

// QuizWord runs its reads in one transaction so the count check and the
// distractor query see the same set of words.
func (s *wordServiceImpl) QuizWord(ctx context.Context, userID uuid.UUID, previousWord string) (*domain.QuizWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var quiz *domain.QuizWord
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		txWords := s.words.WithTx(tx)

		total, err := txWords.Count(ctx, userID)
		if err != nil {
			return err
		}
		if total < domain.QuizCandidates {
			return fmt.Errorf("%w: user has %d words", domain.ErrInsufficientWords, total)
		}

		w, err := txWords.Random(ctx, userID, store.RandomFilter{ExcludeWord: previousWord})
		if err != nil {
			return err
		}

		candidates, err := txWords.RandomTranslations(ctx, userID, w.ID, w.Translation, domain.QuizDistractors)
		if err != nil {
			return err
		}

		quiz, err = domain.NewQuizWord(*w, candidates)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientWords) {
			log.Debug("cannot build quiz", slog.String("reason", err.Error()))
			return nil, err
		}
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInsufficientWords, err)
		}
		log.Error("failed to build quiz word", slog.String("error", err.Error()))
		return nil, NewWordServiceError("quiz_word", "failed to build quiz", err)
	}

	return quiz, nil
}

func (s *wordServiceImpl) CountWords(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.words.Count(ctx, userID)
	if err != nil {
		return 0, NewWordServiceError("count", "failed to count words", err)
	}
	return n, nil
}

func (s *wordServiceImpl) ClearWords(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.words.DeleteAll(ctx, userID)
	if err != nil {
		return 0, NewWordServiceError("clear", "failed to delete words", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("dictionary cleared",
		slog.String("user_id", userID.String()),
		slog.Int("deleted", n))
	return n, nil
}
