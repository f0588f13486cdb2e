package chain

import (
	"context"
	"math"
	"time"
)

const (
	strikeStep   = 50
	strikesAside = 10
)

// Synthetic is a deterministic chain provider: premiums decay linearly with
// distance from the spot, strikes sit on 50-point increments. It stands in
// for a live exchange client and backs tests and offline serving.
type Synthetic struct {
	spot map[string]float64
	now  func() time.Time
}

// NewSynthetic creates a provider with per-underlying spot prices.
func NewSynthetic(spots map[string]float64) *Synthetic {
	s := make(map[string]float64, len(spots))
	for k, v := range spots {
		s[k] = v
	}
	return &Synthetic{spot: s, now: time.Now}
}

// Chain returns strikes centered on the spot, ascending.
func (s *Synthetic) Chain(ctx context.Context, underlying, expiry string) ([]Quote, error) {
	spot, ok := s.spot[underlying]
	if !ok {
		return nil, errUnknownUnderlying(underlying)
	}

	atm := math.Round(spot/strikeStep) * strikeStep
	quotes := make([]Quote, 0, 2*strikesAside+1)
	for i := -strikesAside; i <= strikesAside; i++ {
		strike := atm + float64(i)*strikeStep
		distance := math.Abs(strike - spot)

		// OTM premium decays with distance; ITM premium carries intrinsic
		// value on top of a shrinking time component.
		timeValue := math.Max(5, 120-distance*0.18)
		putPrice := timeValue
		callPrice := timeValue
		if strike > spot {
			putPrice += strike - spot
		} else if strike < spot {
			callPrice += spot - strike
		}

		quotes = append(quotes, Quote{
			Underlying: underlying,
			Expiry:     expiry,
			Strike:     strike,
			PutPrice:   round2(putPrice),
			CallPrice:  round2(callPrice),
			PutVolume:  int64(400000 - distance*100),
			CallVolume: int64(400000 - distance*100),
		})
	}
	return quotes, nil
}

// Snapshot reports the configured spot with a closed/open status by UTC hour.
func (s *Synthetic) Snapshot(ctx context.Context, underlying string) (*Snapshot, error) {
	spot, ok := s.spot[underlying]
	if !ok {
		return nil, errUnknownUnderlying(underlying)
	}
	now := s.now()
	status := "CLOSED"
	if h := now.UTC().Hour(); h >= 4 && h < 10 {
		status = "OPEN"
	}
	return &Snapshot{
		Underlying:   underlying,
		SpotPrice:    spot,
		MarketStatus: status,
		UpdatedAt:    now,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
