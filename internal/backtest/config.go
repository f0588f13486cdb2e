package backtest

import (
	"fmt"

	"time"

	"github.com/condorlabs/condor/internal/core"
)

// Config describes a single simulation run. Immutable and caller-supplied;
// Validate rejects it before the walk begins.
type Config struct {
	Underlying     string
	Start          time.Time
	End            time.Time
	Tier           core.Tier
	InitialCapital float64
	RiskPerTrade   float64 // percent of current capital risked per trade, (0,100]
	Seed           int64   // walk jitter seed; 0 draws from the clock
}

// Validate checks the run configuration.
func (c Config) Validate() error {
	if c.Underlying == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("underlying is required"))
	}
	if _, err := core.ParseTier(string(c.Tier)); err != nil {
		return core.WrapError(core.ErrConfigInvalid, err)
	}
	if c.Start.IsZero() || c.End.IsZero() {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("start and end dates are required"))
	}
	if c.End.Before(c.Start) {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("end date %s before start date %s",
				c.End.Format("2006-01-02"), c.Start.Format("2006-01-02")))
	}
	if c.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial capital must be positive, got %v", c.InitialCapital))
	}
	if c.RiskPerTrade <= 0 || c.RiskPerTrade > 100 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("risk per trade must be in (0,100], got %v", c.RiskPerTrade))
	}
	return nil
}

// TierParams is the fixed per-tier parameter row: the risk-reward target the
// tier aims for, the minimum signal confidence to trade, and the strike
// width in underlying points.
type TierParams struct {
	RiskReward    float64
	MinConfidence int
	StrikeWidth   float64
}

var tierParams = map[core.Tier]TierParams{
	core.TierConservative: {RiskReward: 0.3, MinConfidence: 75, StrikeWidth: 400},
	core.TierModerate:     {RiskReward: 0.5, MinConfidence: 65, StrikeWidth: 300},
	core.TierAggressive:   {RiskReward: 0.8, MinConfidence: 55, StrikeWidth: 200},
}

// ParamsFor returns the parameter row for a tier. Unknown tiers fall back to
// MODERATE; Validate keeps that path unreachable for engine runs.
func ParamsFor(tier core.Tier) TierParams {
	if p, ok := tierParams[tier]; ok {
		return p
	}
	return tierParams[core.TierModerate]
}
