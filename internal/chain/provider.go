// Package chain defines the options chain / market snapshot boundary the
// suggestion builder consumes. The production system fronts a live exchange
// client here; anything returning a conforming chain works, and the package
// ships a deterministic synthetic implementation for offline use and tests.
package chain

import (
	"context"
	"time"
)

// Quote is one strike row of an options chain: last traded premium and
// volume for the put and call at that strike.
type Quote struct {
	Underlying string
	Expiry     string
	Strike     float64
	PutPrice   float64
	CallPrice  float64
	PutVolume  int64
	CallVolume int64
}

// Snapshot is a point-in-time view of the underlying.
type Snapshot struct {
	Underlying    string
	SpotPrice     float64
	Change        float64
	ChangePercent float64
	MarketStatus  string
	UpdatedAt     time.Time
}

// Provider supplies chains and snapshots. Implementations must be safe for
// concurrent reads.
type Provider interface {
	// Chain returns the options chain for the underlying and expiry,
	// ordered by ascending strike.
	Chain(ctx context.Context, underlying, expiry string) ([]Quote, error)

	// Snapshot returns the current market view of the underlying.
	Snapshot(ctx context.Context, underlying string) (*Snapshot, error)
}
