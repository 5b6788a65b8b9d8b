package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
)

// RandomFilter narrows random word selection. Zero values disable a filter.
type RandomFilter struct {
	// ExcludeID skips the word with this id.
	ExcludeID int64
	// ExcludeWord skips words whose text equals this, ignoring case.
	ExcludeWord string
}

// WordStore defines the interface for word persistence. Every method is
// scoped to a user; words owned by someone else behave as missing.
type WordStore interface {
	// Create inserts a word and sets its ID and AddedAt.
	// Returns ErrWordDuplicated if the user already has the same pair.
	Create(ctx context.Context, word *domain.Word) error

	// GetByID retrieves one word.
	// Returns ErrWordNotFound if it does not exist for this user.
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Word, error)

	// Update stores new word and translation text.
	// Returns ErrWordNotFound or ErrWordDuplicated.
	Update(ctx context.Context, word *domain.Word) error

	// Delete removes one word. Returns ErrWordNotFound if nothing was deleted.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error

	// DeleteAll removes every word of the user and returns how many there were.
	DeleteAll(ctx context.Context, userID uuid.UUID) (int, error)

	// IncrementStat adds one to the success or failed counter.
	// Returns ErrWordNotFound if the word does not exist for this user.
	IncrementStat(ctx context.Context, userID uuid.UUID, id int64, success bool) error

	// List returns one page of words and the number of all matches.
	// The query must be normalized and valid.
	List(ctx context.Context, userID uuid.UUID, query domain.ListQuery) (*domain.WordPage, error)

	// Count returns the number of words the user owns.
	Count(ctx context.Context, userID uuid.UUID) (int, error)

	// Random picks one word, preferring new words, then words with failures.
	// The filter is ignored when it would leave nothing to pick.
	// Returns ErrWordNotFound if the user has no words.
	Random(ctx context.Context, userID uuid.UUID, filter RandomFilter) (*domain.Word, error)

	// RandomTranslations returns up to limit distinct translations of the
	// user's words other than excludeID, none equal to translation.
	RandomTranslations(ctx context.Context, userID uuid.UUID, excludeID int64, translation string, limit int) ([]string, error)

	// WithTx returns a WordStore bound to the given transaction.
	WithTx(tx DBTX) WordStore
}
