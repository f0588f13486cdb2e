package condor

import "math"

// Trailing stop states.
const (
	TrailMonitoring = "MONITORING"
	TrailActive     = "TRAILING_ACTIVE"
	TrailExit       = "EXIT_SIGNAL"
)

// TrailingStopState describes where the current P&L sits relative to the
// trailing exit level. Percent fields are rounded to two decimals.
type TrailingStopState struct {
	CurrentPL        float64
	CurrentPLPercent float64
	TrailLevel       float64
	TrailLevelPct    float64
	Status           string
}

// TrailingStop evaluates a trailing stop on an open position. trailPercent is
// how far below the current P&L the trail level sits; the trail activates
// once 80% of max profit is captured.
func TrailingStop(currentPL, maxProfit, trailPercent float64) TrailingStopState {
	var plPct float64
	if maxProfit != 0 {
		plPct = currentPL / maxProfit * 100
	}
	trailLevel := math.Max(0, currentPL*(1-trailPercent/100))
	var trailPct float64
	if maxProfit != 0 {
		trailPct = trailLevel / maxProfit * 100
	}

	status := TrailMonitoring
	if plPct >= 80 {
		status = TrailActive
	} else if plPct <= trailPct {
		status = TrailExit
	}

	return TrailingStopState{
		CurrentPL:        currentPL,
		CurrentPLPercent: round2(plPct),
		TrailLevel:       trailLevel,
		TrailLevelPct:    round2(trailPct),
		Status:           status,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
