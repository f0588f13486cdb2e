// Package history supplies chronologically ordered daily bar series: the
// boundary the simulation engine reads from, a SQLite-backed store that
// also persists finished backtest results, and the synthetic seeder that
// populates it.
package history

import (
	"context"
	"time"

	"github.com/condorlabs/condor/internal/core"
)

// Provider supplies ordered bars for an instrument over a date range.
// Implementations return bars ascending by date with no duplicates; the
// series may be shorter than the requested range, which is not an error.
// Providers must be safe for concurrent reads.
type Provider interface {
	Load(ctx context.Context, underlying string, start, end time.Time) ([]core.Bar, error)
}
