package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
	"github.com/kheyfetsdan/wordsaveriii/internal/platform/postgres"
	"github.com/kheyfetsdan/wordsaveriii/internal/store"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wordCols = []string{"id", "user_id", "word", "translation", "success", "failed", "added_at", "updated_at"}

func newWordStore(t *testing.T) (*postgres.PostgresWordStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return postgres.NewPostgresWordStore(mock, nil), mock
}

func TestPostgresWordStore_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
		wantID  int64
	}{
		{
			name: "inserted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO words`).
					WithArgs(userID, "time", "время", 0, 0, pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
			},
			wantID: 11,
		},
		{
			name: "duplicate pair",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO words`).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "words_user_pair_key"})
			},
			wantErr: store.ErrWordDuplicated,
		},
		{
			name: "other failure",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO words`).WillReturnError(errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newWordStore(t)
			tt.setup(mock)

			w, err := domain.NewWord(userID, "time", "время")
			require.NoError(t, err)

			err = s.Create(context.Background(), w)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, w.ID)
			case errors.Is(tt.wantErr, store.ErrWordDuplicated):
				assert.ErrorIs(t, err, store.ErrWordDuplicated)
			default:
				require.Error(t, err)
				var se *store.StoreError
				assert.ErrorAs(t, err, &se)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresWordStore_Create_InvalidWord(t *testing.T) {
	s, mock := newWordStore(t)

	err := s.Create(context.Background(), &domain.Word{UserID: uuid.New(), Word: " ", Translation: "x"})

	assert.ErrorIs(t, err, domain.ErrEmptyWord)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query for invalid input")
}

func TestPostgresWordStore_GetByID(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`SELECT (.+) FROM words WHERE`).
			WithArgs(int64(3), userID).
			WillReturnRows(pgxmock.NewRows(wordCols).
				AddRow(int64(3), userID, "dog", "собака", 2, 1, now, now))

		w, err := s.GetByID(context.Background(), userID, 3)

		require.NoError(t, err)
		assert.Equal(t, "dog", w.Word)
		assert.Equal(t, "собака", w.Translation)
		assert.Equal(t, 2, w.Success)
		assert.Equal(t, 1, w.Failed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`SELECT (.+) FROM words WHERE`).
			WithArgs(int64(3), userID).
			WillReturnError(pgx.ErrNoRows)

		_, err := s.GetByID(context.Background(), userID, 3)

		assert.ErrorIs(t, err, store.ErrWordNotFound)
	})
}

func TestPostgresWordStore_Update(t *testing.T) {
	userID := uuid.New()
	w := &domain.Word{ID: 5, UserID: userID, Word: "cat", Translation: "кошка", UpdatedAt: time.Now().UTC()}

	tests := []struct {
		name    string
		result  pgconn.CommandTag
		err     error
		wantErr error
	}{
		{name: "updated", result: pgxmock.NewResult("UPDATE", 1)},
		{name: "missing", result: pgxmock.NewResult("UPDATE", 0), wantErr: store.ErrWordNotFound},
		{name: "duplicate", err: &pgconn.PgError{Code: "23505"}, wantErr: store.ErrWordDuplicated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newWordStore(t)
			exp := mock.ExpectExec(`UPDATE words SET word = \$1, translation = \$2, updated_at = \$3 WHERE`).
				WithArgs("cat", "кошка", pgxmock.AnyArg(), int64(5), userID)
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := s.Update(context.Background(), w)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresWordStore_Delete(t *testing.T) {
	userID := uuid.New()

	s, mock := newWordStore(t)
	mock.ExpectExec(`DELETE FROM words WHERE`).
		WithArgs(int64(9), userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM words WHERE`).
		WithArgs(int64(9), userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, s.Delete(context.Background(), userID, 9))
	assert.ErrorIs(t, s.Delete(context.Background(), userID, 9), store.ErrWordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWordStore_DeleteAll(t *testing.T) {
	userID := uuid.New()

	s, mock := newWordStore(t)
	mock.ExpectExec(`DELETE FROM words WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := s.DeleteAll(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWordStore_IncrementStat(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		success bool
		pattern string
	}{
		{"success", true, `UPDATE words SET success = success \+ 1, updated_at = now\(\)`},
		{"failure", false, `UPDATE words SET failed = failed \+ 1, updated_at = now\(\)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newWordStore(t)
			mock.ExpectExec(tt.pattern).
				WithArgs(int64(2), userID).
				WillReturnResult(pgxmock.NewResult("UPDATE", 1))

			require.NoError(t, s.IncrementStat(context.Background(), userID, 2, tt.success))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("missing word", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectExec(`UPDATE words`).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, s.IncrementStat(context.Background(), userID, 2, true), store.ErrWordNotFound)
	})
}

func TestPostgresWordStore_List(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("sorted page with search", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM words WHERE \(user_id = \$1 AND \(word ILIKE \$2 OR translation ILIKE \$3\)\)`).
			WithArgs(userID, "%ti%", "%ti%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectQuery(`SELECT (.+) FROM words WHERE (.+) ORDER BY failed DESC, id ASC LIMIT 5 OFFSET 5`).
			WithArgs(userID, "%ti%", "%ti%").
			WillReturnRows(pgxmock.NewRows(wordCols).
				AddRow(int64(1), userID, "time", "время", 0, 3, now, now).
				AddRow(int64(2), userID, "tide", "прилив", 1, 0, now, now))

		q := domain.ListQuery{
			Search:   "ti",
			Sort:     domain.SortKey{Field: domain.SortByFailed, Direction: domain.Descending},
			Page:     1,
			PageSize: 5,
		}
		page, err := s.List(context.Background(), userID, q)

		require.NoError(t, err)
		assert.Equal(t, 7, page.Total)
		require.Len(t, page.Words, 2)
		assert.Equal(t, "time", page.Words[0].Word)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("like wildcards are escaped", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs(userID, `%50\%%`, `%50\%%`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

		page, err := s.List(context.Background(), userID, domain.ListQuery{Search: "50%", Sort: domain.DefaultSort, PageSize: 5})

		require.NoError(t, err)
		assert.Empty(t, page.Words)
		assert.NotNil(t, page.Words)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page beyond the end skips the list query", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

		page, err := s.List(context.Background(), userID, domain.ListQuery{Sort: domain.DefaultSort, Page: 1, PageSize: 5})

		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Empty(t, page.Words)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("alphabetical order is case-insensitive", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`ORDER BY lower\(word\) ASC, id ASC LIMIT 5 OFFSET 0`).
			WillReturnRows(pgxmock.NewRows(wordCols).AddRow(int64(1), userID, "time", "время", 0, 0, now, now))

		_, err := s.List(context.Background(), userID, domain.ListQuery{Sort: domain.DefaultSort, PageSize: 5})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresWordStore_Random(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("excludes the previous word and prefers new words", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`WHERE \(user_id = \$1 AND id <> \$2\) ORDER BY CASE WHEN success = 0 AND failed = 0 THEN 2 WHEN failed > 0 THEN 1 ELSE 0 END DESC, random\(\) LIMIT 1`).
			WithArgs(userID, int64(4)).
			WillReturnRows(pgxmock.NewRows(wordCols).AddRow(int64(6), userID, "dog", "собака", 0, 0, now, now))

		w, err := s.Random(context.Background(), userID, store.RandomFilter{ExcludeID: 4})

		require.NoError(t, err)
		assert.Equal(t, int64(6), w.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back when the excluded word is the only one", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`lower\(word\) <> lower\(\$2\)`).
			WithArgs(userID, "Dog").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(`WHERE \(user_id = \$1\) ORDER BY`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(wordCols).AddRow(int64(6), userID, "dog", "собака", 1, 0, now, now))

		w, err := s.Random(context.Background(), userID, store.RandomFilter{ExcludeWord: "Dog"})

		require.NoError(t, err)
		assert.Equal(t, "dog", w.Word)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no words", func(t *testing.T) {
		s, mock := newWordStore(t)
		mock.ExpectQuery(`SELECT`).WithArgs(userID).WillReturnError(pgx.ErrNoRows)

		_, err := s.Random(context.Background(), userID, store.RandomFilter{})

		assert.ErrorIs(t, err, store.ErrWordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresWordStore_RandomTranslations(t *testing.T) {
	userID := uuid.New()

	s, mock := newWordStore(t)
	mock.ExpectQuery(`SELECT DISTINCT ON \(lower\(translation\)\) translation`).
		WithArgs(userID, int64(6), "собака", 3).
		WillReturnRows(pgxmock.NewRows([]string{"translation"}).
			AddRow("кот").AddRow("мышь").AddRow("птица"))

	got, err := s.RandomTranslations(context.Background(), userID, 6, "собака", 3)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"кот", "мышь", "птица"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWordStore_Count(t *testing.T) {
	userID := uuid.New()

	s, mock := newWordStore(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM words WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	n, err := s.Count(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 12, n)
}
