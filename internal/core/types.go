package core

import (
	"fmt"
	"strings"
	"time"
)

// Bar is one trading-day OHLCV sample. Bars are immutable once recorded;
// providers return them in ascending date order with weekends and holidays
// simply absent.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// IsValid checks the bar has positive prices and non-negative volume.
func (b Bar) IsValid() bool {
	return b.Open > 0 && b.High > 0 && b.Low > 0 && b.Close > 0 && b.Volume >= 0
}

// Direction is the directional reading of a breakout signal.
type Direction string

const (
	Bullish Direction = "BULLISH"
	Bearish Direction = "BEARISH"
	Neutral Direction = "NEUTRAL"
)

// Tier selects a strategy parameter row: wider strikes and a higher
// confidence gate on the conservative end, tighter and looser on the
// aggressive end.
type Tier string

const (
	TierConservative Tier = "CONSERVATIVE"
	TierModerate     Tier = "MODERATE"
	TierAggressive   Tier = "AGGRESSIVE"
)

// ParseTier converts a case-insensitive tier name.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToUpper(strings.TrimSpace(s))) {
	case TierConservative:
		return TierConservative, nil
	case TierModerate:
		return TierModerate, nil
	case TierAggressive:
		return TierAggressive, nil
	}
	return "", fmt.Errorf("unknown strategy tier %q", s)
}
