package practice

import (
	"context"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
)

// WordSource supplies the words to practice. *client.Client implements it.
type WordSource interface {
	RandomWord(ctx context.Context, excludeID int64) (*client.Word, error)
	QuizWord(ctx context.Context, previousWord string) (*client.QuizWord, error)
}

// StatReporter records the outcome of a round. Implementations must not
// block the caller.
type StatReporter interface {
	Report(wordID int64, success bool)
}

// StatUpdater sends one statistics update. *client.Client implements it.
type StatUpdater interface {
	UpdateStat(ctx context.Context, id int64, success bool) error
}

var (
	_ WordSource  = (*client.Client)(nil)
	_ StatUpdater = (*client.Client)(nil)
)

// DiscardReporter drops every report.
type DiscardReporter struct{}

// Report implements StatReporter.
func (DiscardReporter) Report(int64, bool) {}
