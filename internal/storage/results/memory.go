// internal/storage/results/memory.go
package results

import (
	"context"
	"sync"

	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/core"
)

// MemoryStore is an in-memory result store bounded to a max capacity.
type MemoryStore struct {
	results []backtest.Result
	maxSize int
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store with max capacity.
func NewMemoryStore(maxSize int) *MemoryStore {
	return &MemoryStore{
		results: make([]backtest.Result, 0, maxSize),
		maxSize: maxSize,
	}
}

// Save adds a result to the store, evicting the oldest over capacity.
func (m *MemoryStore) Save(ctx context.Context, result *backtest.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = append(m.results, *result)
	if len(m.results) > m.maxSize {
		m.results = m.results[len(m.results)-m.maxSize:]
	}
	return nil
}

// GetByID retrieves a result by ID.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*backtest.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.results {
		if m.results[i].ID == id {
			r := m.results[i]
			return &r, nil
		}
	}
	return nil, core.ErrNotFound
}

// List returns result summaries matching the filter, newest first.
func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]backtest.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []backtest.Result
	for i := len(m.results) - 1; i >= 0; i-- {
		r := m.results[i]
		if !matches(r, filter) {
			continue
		}
		r.Trades = nil
		out = append(out, r)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []backtest.Result{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Count returns the count of matching results.
func (m *MemoryStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.results {
		if matches(r, filter) {
			count++
		}
	}
	return count, nil
}

func matches(r backtest.Result, filter ListFilter) bool {
	if filter.Underlying != "" && r.Underlying != filter.Underlying {
		return false
	}
	if filter.Tier != "" && r.Tier != filter.Tier {
		return false
	}
	if !filter.From.IsZero() && r.CreatedAt.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && r.CreatedAt.After(filter.To) {
		return false
	}
	return true
}
