package mocks

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
	"github.com/kheyfetsdan/wordsaveriii/internal/store"
)

// MockWordStore implements store.WordStore for testing. Without overrides it
// is a working in-memory store that follows the Postgres store's ordering,
// search, duplicate and tiering rules.
type MockWordStore struct {
	CreateFn             func(ctx context.Context, word *domain.Word) error
	GetByIDFn            func(ctx context.Context, userID uuid.UUID, id int64) (*domain.Word, error)
	UpdateFn             func(ctx context.Context, word *domain.Word) error
	DeleteFn             func(ctx context.Context, userID uuid.UUID, id int64) error
	DeleteAllFn          func(ctx context.Context, userID uuid.UUID) (int, error)
	IncrementStatFn      func(ctx context.Context, userID uuid.UUID, id int64, success bool) error
	ListFn               func(ctx context.Context, userID uuid.UUID, q domain.ListQuery) (*domain.WordPage, error)
	CountFn              func(ctx context.Context, userID uuid.UUID) (int, error)
	RandomFn             func(ctx context.Context, userID uuid.UUID, filter store.RandomFilter) (*domain.Word, error)
	RandomTranslationsFn func(ctx context.Context, userID uuid.UUID, excludeID int64, translation string, limit int) ([]string, error)

	// WithTxCalls counts how many times WithTx was called.
	WithTxCalls int

	mu     sync.Mutex
	nextID int64
	words  map[int64]*domain.Word
}

var _ store.WordStore = (*MockWordStore)(nil)

// NewMockWordStore creates an empty in-memory word store.
func NewMockWordStore() *MockWordStore {
	return &MockWordStore{words: make(map[int64]*domain.Word)}
}

// Seed adds words for userID without duplicate checks and returns them.
func (m *MockWordStore) Seed(userID uuid.UUID, pairs ...[2]string) []*domain.Word {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Word, 0, len(pairs))
	for _, p := range pairs {
		m.nextID++
		now := time.Now().UTC()
		w := &domain.Word{
			ID:          m.nextID,
			UserID:      userID,
			Word:        p[0],
			Translation: p[1],
			AddedAt:     now,
			UpdatedAt:   now,
		}
		m.words[w.ID] = w
		cp := *w
		out = append(out, &cp)
	}
	return out
}

// Create implements store.WordStore.
func (m *MockWordStore) Create(ctx context.Context, word *domain.Word) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, word)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.duplicateLocked(word) {
		return store.ErrWordDuplicated
	}

	m.nextID++
	now := time.Now().UTC()
	word.ID = m.nextID
	word.AddedAt = now
	word.UpdatedAt = now

	cp := *word
	m.words[cp.ID] = &cp
	return nil
}

// GetByID implements store.WordStore.
func (m *MockWordStore) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Word, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.words[id]
	if !ok || w.UserID != userID {
		return nil, store.ErrWordNotFound
	}
	cp := *w
	return &cp, nil
}

// Update implements store.WordStore.
func (m *MockWordStore) Update(ctx context.Context, word *domain.Word) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, word)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.words[word.ID]
	if !ok || w.UserID != word.UserID {
		return store.ErrWordNotFound
	}
	if m.duplicateLocked(word) {
		return store.ErrWordDuplicated
	}

	w.Word = word.Word
	w.Translation = word.Translation
	w.UpdatedAt = time.Now().UTC()
	word.UpdatedAt = w.UpdatedAt
	return nil
}

// Delete implements store.WordStore.
func (m *MockWordStore) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.words[id]
	if !ok || w.UserID != userID {
		return store.ErrWordNotFound
	}
	delete(m.words, id)
	return nil
}

// DeleteAll implements store.WordStore.
func (m *MockWordStore) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, w := range m.words {
		if w.UserID == userID {
			delete(m.words, id)
			n++
		}
	}
	return n, nil
}

// IncrementStat implements store.WordStore.
func (m *MockWordStore) IncrementStat(ctx context.Context, userID uuid.UUID, id int64, success bool) error {
	if m.IncrementStatFn != nil {
		return m.IncrementStatFn(ctx, userID, id, success)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.words[id]
	if !ok || w.UserID != userID {
		return store.ErrWordNotFound
	}
	w.RecordAnswer(success)
	return nil
}

// List implements store.WordStore.
func (m *MockWordStore) List(ctx context.Context, userID uuid.UUID, q domain.ListQuery) (*domain.WordPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, q)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	search := strings.ToLower(q.Search)
	var matched []domain.Word
	for _, w := range m.userWordsLocked(userID) {
		if search != "" &&
			!strings.Contains(strings.ToLower(w.Word), search) &&
			!strings.Contains(strings.ToLower(w.Translation), search) {
			continue
		}
		matched = append(matched, w)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var cmp int
		switch q.Sort.Field {
		case domain.SortBySuccess:
			cmp = a.Success - b.Success
		case domain.SortByFailed:
			cmp = a.Failed - b.Failed
		default:
			cmp = strings.Compare(strings.ToLower(a.Word), strings.ToLower(b.Word))
		}
		if q.Sort.Direction == domain.Descending {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		return a.ID < b.ID
	})

	page := &domain.WordPage{Words: []domain.Word{}, Total: len(matched)}
	start := q.Offset()
	if start < len(matched) {
		end := min(start+q.PageSize, len(matched))
		page.Words = append(page.Words, matched[start:end]...)
	}
	return page, nil
}

// Count implements store.WordStore.
func (m *MockWordStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.userWordsLocked(userID)), nil
}

// Random implements store.WordStore.
func (m *MockWordStore) Random(ctx context.Context, userID uuid.UUID, filter store.RandomFilter) (*domain.Word, error) {
	if m.RandomFn != nil {
		return m.RandomFn(ctx, userID, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.userWordsLocked(userID)
	if len(all) == 0 {
		return nil, store.ErrWordNotFound
	}

	exclude := strings.TrimSpace(filter.ExcludeWord)
	var candidates []domain.Word
	for _, w := range all {
		if filter.ExcludeID != 0 && w.ID == filter.ExcludeID {
			continue
		}
		if exclude != "" && strings.EqualFold(w.Word, exclude) {
			continue
		}
		candidates = append(candidates, w)
	}
	if len(candidates) == 0 {
		candidates = all
	}

	best := -1
	var tier []domain.Word
	for _, w := range candidates {
		switch t := w.Tier(); {
		case t > best:
			best = t
			tier = []domain.Word{w}
		case t == best:
			tier = append(tier, w)
		}
	}

	w := tier[rand.IntN(len(tier))]
	return &w, nil
}

// RandomTranslations implements store.WordStore.
func (m *MockWordStore) RandomTranslations(
	ctx context.Context,
	userID uuid.UUID,
	excludeID int64,
	translation string,
	limit int,
) ([]string, error) {
	if m.RandomTranslationsFn != nil {
		return m.RandomTranslationsFn(ctx, userID, excludeID, translation, limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]struct{}{strings.ToLower(translation): {}}
	out := []string{}
	words := m.userWordsLocked(userID)
	rand.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	for _, w := range words {
		if len(out) == limit {
			break
		}
		key := strings.ToLower(w.Translation)
		if _, dup := seen[key]; dup || w.ID == excludeID {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w.Translation)
	}
	return out, nil
}

// WithTx implements store.WordStore. The mock ignores the transaction.
func (m *MockWordStore) WithTx(tx store.DBTX) store.WordStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}

func (m *MockWordStore) userWordsLocked(userID uuid.UUID) []domain.Word {
	out := []domain.Word{}
	for _, w := range m.words {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockWordStore) duplicateLocked(word *domain.Word) bool {
	for _, w := range m.words {
		if w.ID != word.ID && w.UserID == word.UserID &&
			strings.EqualFold(w.Word, word.Word) &&
			strings.EqualFold(w.Translation, word.Translation) {
			return true
		}
	}
	return false
}
