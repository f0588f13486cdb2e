// internal/storage/results/interface.go
package results

import (
	"context"
	"time"

	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/core"
)

// Store defines the interface for backtest result persistence.
type Store interface {
	// Save persists a finished run.
	Save(ctx context.Context, result *backtest.Result) error

	// GetByID retrieves a result, including its trade ledger, by ID.
	GetByID(ctx context.Context, id string) (*backtest.Result, error)

	// List retrieves result summaries matching the filter, newest first.
	// The trade ledger is omitted from listed results.
	List(ctx context.Context, filter ListFilter) ([]backtest.Result, error)

	// Count returns the number of results matching the filter.
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter defines criteria for listing results.
type ListFilter struct {
	Underlying string
	Tier       core.Tier
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}
