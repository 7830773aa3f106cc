package mocks

import (
	"context"
	"sync"

	"github.com/example/promostock/internal/infrastructure/store"
)

// MockLedgerStore wraps an in-memory store and records ApplyMovement calls,
// with an injectable error or callback for failure-path tests.
type MockLedgerStore struct {
	mu    sync.Mutex
	inner *store.MemoryStore

	ApplyCalls    []store.Movement
	ApplyErr      error
	ApplyCallback func(ctx context.Context, m *store.Movement) (*store.Movement, error)
}

func NewMockLedgerStore() *MockLedgerStore {
	return &MockLedgerStore{inner: store.NewMemoryStore()}
}

// Inner exposes the backing memory store for seeding counters and catalog rows.
func (m *MockLedgerStore) Inner() *store.MemoryStore {
	return m.inner
}

func (m *MockLedgerStore) ApplyMovement(ctx context.Context, mv *store.Movement) (*store.Movement, error) {
	m.mu.Lock()
	m.ApplyCalls = append(m.ApplyCalls, *mv)
	cb, err := m.ApplyCallback, m.ApplyErr
	m.mu.Unlock()

	if cb != nil {
		return cb(ctx, mv)
	}
	if err != nil {
		return nil, err
	}
	return m.inner.ApplyMovement(ctx, mv)
}

func (m *MockLedgerStore) InsertSize(ctx context.Context, size *store.SizeCounters) error {
	return m.inner.InsertSize(ctx, size)
}

func (m *MockLedgerStore) SizeByID(ctx context.Context, sizeID string) (*store.SizeCounters, error) {
	return m.inner.SizeByID(ctx, sizeID)
}

func (m *MockLedgerStore) SizesByItem(ctx context.Context, itemID string) ([]store.SizeCounters, error) {
	return m.inner.SizesByItem(ctx, itemID)
}

func (m *MockLedgerStore) MovementsByPromoter(ctx context.Context, promoterID string) ([]store.Movement, error) {
	return m.inner.MovementsByPromoter(ctx, promoterID)
}

func (m *MockLedgerStore) MovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]store.Movement, error) {
	return m.inner.MovementsByItem(ctx, itemID, limit, offset)
}

// Reset clears recorded calls and injected behavior.
func (m *MockLedgerStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyCalls = nil
	m.ApplyErr = nil
	m.ApplyCallback = nil
}
