package wordio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
)

const sheetName = "Words"

var header = []string{"word", "translation", "success", "failed", "added_at"}

// Saver stores one word. *client.Client implements it.
type Saver interface {
	SaveWord(ctx context.Context, word, translation string) (*client.Word, error)
}

// Lister fetches one page of words. *client.Client implements it.
type Lister interface {
	ListWords(ctx context.Context, req client.ListRequest) (*client.WordList, error)
}

var (
	_ Saver  = (*client.Client)(nil)
	_ Lister = (*client.Client)(nil)
)

// ImportResult summarises an import.
type ImportResult struct {
	Created    int
	Duplicates int
	Failed     []RowError
}

// Import saves every entry. Duplicates are counted, other per-row failures
// are collected. Authentication and transport failures abort the import
// since every later row would fail the same way.
func Import(ctx context.Context, saver Saver, entries []Entry, logger *slog.Logger) (*ImportResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "wordio")

	result := &ImportResult{}
	for _, e := range entries {
		if err := checkContext(ctx); err != nil {
			return result, err
		}

		_, err := saver.SaveWord(ctx, e.Word, e.Translation)
		var transportErr *client.TransportError
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, client.ErrDuplicate):
			result.Duplicates++
		case errors.Is(err, client.ErrNotAuthenticated), errors.As(err, &transportErr):
			return result, fmt.Errorf("import stopped at row %d: %w", e.Row, err)
		default:
			result.Failed = append(result.Failed, RowError{Row: e.Row, Err: err})
		}
	}

	logger.Debug("import finished",
		"created", result.Created,
		"duplicates", result.Duplicates,
		"failed", len(result.Failed))
	return result, nil
}

// FetchAll pages through the whole dictionary in alphabetical order.
func FetchAll(ctx context.Context, lister Lister) ([]client.Word, error) {
	var words []client.Word
	for page := 0; ; page++ {
		list, err := lister.ListWords(ctx, client.ListRequest{
			Sort:     domain.DefaultSort,
			Page:     page,
			PageSize: domain.MaxPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		words = append(words, list.Words...)
		if len(list.Words) == 0 || len(words) >= list.Total {
			return words, nil
		}
	}
}

// Write encodes words in format.
func Write(w io.Writer, format Format, words []client.Word) error {
	switch format {
	case XLSX:
		return writeXLSX(w, words)
	case CSV:
		return writeCSV(w, words)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Export writes the whole dictionary to path, picking the format from its
// extension. It returns the number of words written.
func Export(ctx context.Context, lister Lister, path string) (int, error) {
	format, err := FormatOf(path)
	if err != nil {
		return 0, err
	}

	words, err := FetchAll(ctx, lister)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, words); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	return len(words), nil
}

func record(w client.Word) []string {
	return []string{
		w.Word,
		w.Translation,
		strconv.Itoa(w.Success),
		strconv.Itoa(w.Failed),
		w.AddedAt.UTC().Format(time.RFC3339),
	}
}

func writeCSV(w io.Writer, words []client.Word) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, word := range words {
		if err := cw.Write(record(word)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, words []client.Word) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, word := range words {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{word.Word, word.Translation, word.Success, word.Failed, word.AddedAt.UTC().Format(time.RFC3339)}
		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
