package mocks

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/kheyfetsdan/wordsaveriii/internal/store"
)

// MockDB implements store.TxBeginner and hands out MockTx values.
type MockDB struct {
	BeginFn func(ctx context.Context) (pgx.Tx, error)

	mu  sync.Mutex
	Txs []*MockTx
}

var _ store.TxBeginner = (*MockDB)(nil)

// NewMockDB creates a MockDB whose transactions always succeed.
func NewMockDB() *MockDB {
	return &MockDB{}
}

// Begin implements store.TxBeginner.
func (m *MockDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.BeginFn != nil {
		return m.BeginFn(ctx)
	}

	tx := &MockTx{}
	m.mu.Lock()
	m.Txs = append(m.Txs, tx)
	m.mu.Unlock()
	return tx, nil
}

// MockTx records whether it was committed or rolled back. Only Commit and
// Rollback are implemented; other pgx.Tx methods panic on the nil embed, so
// stores used with it must ignore the transaction handle.
type MockTx struct {
	pgx.Tx

	CommitErr  error
	Committed  bool
	RolledBack bool
}

// Commit implements pgx.Tx.
func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed = true
	return nil
}

// Rollback implements pgx.Tx.
func (t *MockTx) Rollback(ctx context.Context) error {
	t.RolledBack = true
	return nil
}
