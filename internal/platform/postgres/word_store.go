package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
	"github.com/kheyfetsdan/wordsaveriii/internal/store"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var wordColumns = []string{
	"id", "user_id", "word", "translation", "success", "failed", "added_at", "updated_at",
}

// tierExpr ranks new words above struggling words above the rest.
const tierExpr = "CASE WHEN success = 0 AND failed = 0 THEN 2 WHEN failed > 0 THEN 1 ELSE 0 END"

const selectDistractorsSQL = `
	SELECT translation FROM (
		SELECT DISTINCT ON (lower(translation)) translation
		FROM words
		WHERE user_id = $1 AND id <> $2 AND lower(translation) <> lower($3)
	) AS candidates
	ORDER BY random()
	LIMIT $4`

type wordRow struct {
	ID          int64     `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Word        string    `db:"word"`
	Translation string    `db:"translation"`
	Success     int       `db:"success"`
	Failed      int       `db:"failed"`
	AddedAt     time.Time `db:"added_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r wordRow) toDomain() domain.Word {
	return domain.Word{
		ID:          r.ID,
		UserID:      r.UserID,
		Word:        r.Word,
		Translation: r.Translation,
		Success:     r.Success,
		Failed:      r.Failed,
		AddedAt:     r.AddedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// PostgresWordStore implements store.WordStore.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.WordStore = (*PostgresWordStore)(nil)

// NewPostgresWordStore creates a word store on db.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// WithTx implements store.WordStore.WithTx.
func (s *PostgresWordStore) WithTx(tx store.DBTX) store.WordStore {
	return &PostgresWordStore{db: tx, logger: s.logger}
}

// Create implements store.WordStore.Create.
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return err
	}

	query, args, err := psql.Insert("words").
		Columns("user_id", "word", "translation", "success", "failed", "added_at", "updated_at").
		Values(word.UserID, word.Word, word.Translation, word.Success, word.Failed, word.AddedAt, word.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if err := s.db.QueryRow(ctx, query, args...).Scan(&word.ID); err != nil {
		if IsUniqueViolation(err) {
			return store.ErrWordDuplicated
		}
		s.logger.Error("failed to insert word",
			slog.String("user_id", word.UserID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("word", "create", "insert failed", MapError(err))
	}

	s.logger.Debug("word created",
		slog.Int64("word_id", word.ID),
		slog.String("user_id", word.UserID.String()))
	return nil
}

// GetByID implements store.WordStore.GetByID.
func (s *PostgresWordStore) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Word, error) {
	query, args, err := psql.Select(wordColumns...).
		From("words").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var row wordRow
	if err := pgxscan.Get(ctx, s.db, &row, query, args...); err != nil {
		if isNoRows(err) {
			return nil, store.ErrWordNotFound
		}
		return nil, store.NewStoreError("word", "get", "query failed", MapError(err))
	}

	w := row.toDomain()
	return &w, nil
}

// Update implements store.WordStore.Update.
func (s *PostgresWordStore) Update(ctx context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return err
	}

	query, args, err := psql.Update("words").
		Set("word", word.Word).
		Set("translation", word.Translation).
		Set("updated_at", word.UpdatedAt).
		Where(sq.Eq{"id": word.ID, "user_id": word.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrWordDuplicated
		}
		return store.NewStoreError("word", "update", "update failed", MapError(err))
	}
	return CheckRowsAffected(tag, store.ErrWordNotFound)
}

// Delete implements store.WordStore.Delete.
func (s *PostgresWordStore) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	query, args, err := psql.Delete("words").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return store.NewStoreError("word", "delete", "delete failed", MapError(err))
	}
	return CheckRowsAffected(tag, store.ErrWordNotFound)
}

// DeleteAll implements store.WordStore.DeleteAll.
func (s *PostgresWordStore) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := psql.Delete("words").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, store.NewStoreError("word", "delete_all", "delete failed", MapError(err))
	}

	s.logger.Info("dictionary cleared",
		slog.String("user_id", userID.String()),
		slog.Int64("deleted", tag.RowsAffected()))
	return int(tag.RowsAffected()), nil
}

// IncrementStat implements store.WordStore.IncrementStat.
func (s *PostgresWordStore) IncrementStat(ctx context.Context, userID uuid.UUID, id int64, success bool) error {
	column := "failed"
	if success {
		column = "success"
	}

	query, args, err := psql.Update("words").
		Set(column, sq.Expr(column+" + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return store.NewStoreError("word", "increment_stat", "update failed", MapError(err))
	}
	return CheckRowsAffected(tag, store.ErrWordNotFound)
}

// List implements store.WordStore.List.
func (s *PostgresWordStore) List(ctx context.Context, userID uuid.UUID, q domain.ListQuery) (*domain.WordPage, error) {
	where := sq.And{sq.Eq{"user_id": userID}}
	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		where = append(where, sq.Or{sq.ILike{"word": pattern}, sq.ILike{"translation": pattern}})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("words").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count: %w", err)
	}

	var total int
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, store.NewStoreError("word", "list", "count failed", MapError(err))
	}

	page := &domain.WordPage{Words: []domain.Word{}, Total: total}
	if total == 0 || q.Offset() >= total {
		return page, nil
	}

	listSQL, listArgs, err := psql.Select(wordColumns...).
		From("words").
		Where(where).
		OrderBy(orderByClause(q.Sort)...).
		Limit(uint64(q.PageSize)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list: %w", err)
	}

	var rows []wordRow
	if err := pgxscan.Select(ctx, s.db, &rows, listSQL, listArgs...); err != nil {
		return nil, store.NewStoreError("word", "list", "query failed", MapError(err))
	}

	for _, r := range rows {
		page.Words = append(page.Words, r.toDomain())
	}
	return page, nil
}

// Count implements store.WordStore.Count.
func (s *PostgresWordStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("words").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count: %w", err)
	}

	var n int
	if err := s.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, store.NewStoreError("word", "count", "count failed", MapError(err))
	}
	return n, nil
}

// Random implements store.WordStore.Random.
func (s *PostgresWordStore) Random(ctx context.Context, userID uuid.UUID, filter store.RandomFilter) (*domain.Word, error) {
	w, err := s.random(ctx, userID, filter)
	if err == nil || !isNoRows(err) {
		return w, err
	}

	if filter != (store.RandomFilter{}) {
		// The excluded word may be the only one left.
		w, err = s.random(ctx, userID, store.RandomFilter{})
		if err == nil || !isNoRows(err) {
			return w, err
		}
	}
	return nil, store.ErrWordNotFound
}

func (s *PostgresWordStore) random(ctx context.Context, userID uuid.UUID, filter store.RandomFilter) (*domain.Word, error) {
	where := sq.And{sq.Eq{"user_id": userID}}
	if filter.ExcludeID != 0 {
		where = append(where, sq.NotEq{"id": filter.ExcludeID})
	}
	if w := strings.TrimSpace(filter.ExcludeWord); w != "" {
		where = append(where, sq.Expr("lower(word) <> lower(?)", w))
	}

	query, args, err := psql.Select(wordColumns...).
		From("words").
		Where(where).
		OrderBy(tierExpr+" DESC", "random()").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build random select: %w", err)
	}

	var row wordRow
	if err := pgxscan.Get(ctx, s.db, &row, query, args...); err != nil {
		if isNoRows(err) {
			return nil, err
		}
		return nil, store.NewStoreError("word", "random", "query failed", MapError(err))
	}

	w := row.toDomain()
	return &w, nil
}

// RandomTranslations implements store.WordStore.RandomTranslations.
func (s *PostgresWordStore) RandomTranslations(
	ctx context.Context,
	userID uuid.UUID,
	excludeID int64,
	translation string,
	limit int,
) ([]string, error) {
	var out []string
	if err := pgxscan.Select(ctx, s.db, &out, selectDistractorsSQL, userID, excludeID, translation, limit); err != nil {
		return nil, store.NewStoreError("word", "random_translations", "query failed", MapError(err))
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func orderByClause(key domain.SortKey) []string {
	dir := "ASC"
	if key.Direction == domain.Descending {
		dir = "DESC"
	}

	switch key.Field {
	case domain.SortBySuccess:
		return []string{"success " + dir, "id ASC"}
	case domain.SortByFailed:
		return []string{"failed " + dir, "id ASC"}
	default:
		return []string{"lower(word) " + dir, "id ASC"}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
