package domain

import (
	"fmt"
	"math"
	"strings"
)

// SortField names a column the word list can be ordered by.
type SortField string

const (
	SortByWord    SortField = "word"
	SortBySuccess SortField = "success"
	SortByFailed  SortField = "failed"
)

// SortDirection is either ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Paging limits for word lists.
const (
	DefaultPageSize = 5
	MaxPageSize     = 100
	// MaxPage keeps Page*PageSize within a 32-bit offset.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// SortKey combines a field and a direction.
type SortKey struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders alphabetically.
var DefaultSort = SortKey{Field: SortByWord, Direction: Ascending}

// ParseSortField accepts the wire names, case-insensitively.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByWord, SortBySuccess, SortByFailed:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown field %q", ErrInvalidSort, s)
}

// ParseSortDirection accepts "asc" and "desc", case-insensitively.
func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, s)
}

// Validate checks that both parts of the key are known.
func (k SortKey) Validate() error {
	if _, err := ParseSortField(string(k.Field)); err != nil {
		return err
	}
	_, err := ParseSortDirection(string(k.Direction))
	return err
}

// Toggle returns the key produced by activating field: the same field flips
// its direction, a different field starts ascending.
func (k SortKey) Toggle(field SortField) SortKey {
	if k.Field == field {
		if k.Direction == Ascending {
			return SortKey{Field: field, Direction: Descending}
		}
		return SortKey{Field: field, Direction: Ascending}
	}
	return SortKey{Field: field, Direction: Ascending}
}

func (k SortKey) String() string {
	return string(k.Field) + " " + string(k.Direction)
}

// ListQuery describes one page of a user's words. Page is 0-based.
type ListQuery struct {
	Search   string
	Sort     SortKey
	Page     int
	PageSize int
}

// Normalize fills in defaults for an unset sort and page size.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Sort.Field == "" {
		q.Sort.Field = DefaultSort.Field
	}
	if q.Sort.Direction == "" {
		q.Sort.Direction = DefaultSort.Direction
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Validate checks sort and paging bounds.
func (q ListQuery) Validate() error {
	if err := q.Sort.Validate(); err != nil {
		return err
	}
	if q.Page < 0 {
		return fmt.Errorf("%w: page must not be negative", ErrInvalidPage)
	}
	if q.Page > MaxPage {
		return fmt.Errorf("%w: page must not exceed %d", ErrInvalidPage, MaxPage)
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidPage, MaxPageSize)
	}
	return nil
}

// Offset is the number of rows skipped before this page.
func (q ListQuery) Offset() int {
	return q.Page * q.PageSize
}

// WordPage is one page of words plus the number of all matching words.
type WordPage struct {
	Words []Word
	Total int
}

// TotalPages returns ceil(total / pageSize), or 0 for an empty result.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
