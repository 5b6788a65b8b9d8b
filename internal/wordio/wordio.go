// Package wordio reads word lists from spreadsheets and writes a user's
// dictionary back out. Both .xlsx and .csv files are supported; the first
// column holds the word and the second its translation.
package wordio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is a file format.
type Format string

const (
	XLSX Format = "xlsx"
	CSV  Format = "csv"
)

// ErrUnsupportedFormat is returned for file extensions other than .xlsx and .csv.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Entry is one word and translation pair read from a file.
type Entry struct {
	Row         int
	Word        string
	Translation string
}

// RowError describes a row that could not be read or imported.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return XLSX, nil
	case ".csv":
		return CSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ReadFile reads entries from an .xlsx or .csv file.
func ReadFile(path string) ([]Entry, []RowError, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, format)
}

// Read parses entries from r. Rows with a blank word or translation are
// reported and skipped. A leading "word, translation" header is ignored.
// Only the first sheet of a workbook is read.
func Read(r io.Reader, format Format) ([]Entry, []RowError, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case XLSX:
		rows, err = xlsxRows(r)
	case CSV:
		rows, err = csvRows(r)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, nil, err
	}
	entries, rowErrs := parseRows(rows)
	return entries, rowErrs, nil
}

func xlsxRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func csvRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func parseRows(rows [][]string) ([]Entry, []RowError) {
	var (
		entries []Entry
		rowErrs []RowError
	)
	for i, row := range rows {
		rowNum := i + 1
		word, translation := cell(row, 0), cell(row, 1)

		if word == "" && translation == "" {
			continue
		}
		if i == 0 && isHeader(word, translation) {
			continue
		}
		if word == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Err: errors.New("word is empty")})
			continue
		}
		if translation == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Err: errors.New("translation is empty")})
			continue
		}
		entries = append(entries, Entry{Row: rowNum, Word: word, Translation: translation})
	}
	return entries, rowErrs
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(row[i], "\ufeff"))
}

func isHeader(word, translation string) bool {
	return strings.EqualFold(word, "word") && strings.EqualFold(translation, "translation")
}

// checkContext lets long imports stop between rows.
func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}
	return nil
}
