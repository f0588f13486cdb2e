package history

import (
	"context"
	"sync"
	"time"

	"github.com/condorlabs/condor/internal/core"
)

// MemoryProvider is an in-memory bar store keyed by underlying. It is used
// in tests and as a cache-free fallback when no database path is configured.
type MemoryProvider struct {
	mu     sync.RWMutex
	series map[string][]core.Bar
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{series: make(map[string][]core.Bar)}
}

// SaveBars appends bars to the series for an underlying. Bars are assumed to
// arrive in date order.
func (m *MemoryProvider) SaveBars(ctx context.Context, underlying string, bars []core.Bar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[underlying] = append(m.series[underlying], bars...)
	return nil
}

// ReplaceBars swaps the whole series for an underlying.
func (m *MemoryProvider) ReplaceBars(ctx context.Context, underlying string, bars []core.Bar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[underlying] = append([]core.Bar(nil), bars...)
	return nil
}

// Load returns the bars for an underlying within [start, end].
func (m *MemoryProvider) Load(ctx context.Context, underlying string, start, end time.Time) ([]core.Bar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []core.Bar
	for _, b := range m.series[underlying] {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
