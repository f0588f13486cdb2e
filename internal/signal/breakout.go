// Package signal implements the wick-breakout detector used for iron condor
// entry decisions. The detector is a pure function over a 4-bar window: the
// third bar's high/low define a reference band (the "wick limits") and the
// fourth bar's close is tested against it.
package signal

import (
	"math"

	"github.com/condorlabs/condor/internal/core"
)

// WindowSize is the number of bars the detector consumes.
const WindowSize = 4

// Analysis is the detector output. Strength and Confidence are integers in
// [0,100]. EntryPoint and StopLoss are only meaningful when Breakout is true;
// inside-band readings carry no actionable levels.
type Analysis struct {
	Direction    core.Direction
	Strength     int
	Confidence   int
	Breakout     bool
	EntryPoint   float64
	StopLoss     float64
	UpperLimit   float64
	LowerLimit   float64
	CurrentPrice float64
	Changes      [WindowSize]float64 // bar-over-bar percent changes, Changes[0] is always 0
}

// Detect analyzes the last four bars for a wick breakout. Fewer than four
// bars is not an error: the reading degrades to a neutral, zero-strength
// signal at baseline confidence.
func Detect(bars []core.Bar) Analysis {
	if len(bars) < WindowSize {
		return Analysis{Direction: core.Neutral, Strength: 0, Confidence: 50}
	}
	window := bars[len(bars)-WindowSize:]

	a := Analysis{
		UpperLimit:   window[2].High,
		LowerLimit:   window[2].Low,
		CurrentPrice: window[3].Close,
	}
	for i := 1; i < WindowSize; i++ {
		prev := window[i-1].Close
		if prev != 0 {
			a.Changes[i] = (window[i].Close - prev) / prev * 100
		}
	}

	upper := a.UpperLimit
	lower := a.LowerLimit
	price := a.CurrentPrice

	var strength, confidence float64

	switch {
	case price > upper:
		// Close above the upper wick: bullish breakout. Strength floors at
		// 60 so breakouts are always separable from inside-band readings.
		a.Direction = core.Bullish
		distance := (price - upper) / upper * 100
		strength = math.Min(100, math.Max(60, distance*50))
		confidence = math.Min(95, 70+strength/4)
		a.Breakout = true
		a.EntryPoint = upper
		a.StopLoss = lower

	case price < lower:
		a.Direction = core.Bearish
		distance := (lower - price) / lower * 100
		strength = math.Min(100, math.Max(60, distance*50))
		confidence = math.Min(95, 70+strength/4)
		a.Breakout = true
		a.EntryPoint = lower
		a.StopLoss = upper

	default:
		// Price inside the wick band: lean on where it sits in the range.
		bandRange := upper - lower
		var position float64
		if bandRange > 0 {
			position = (price - lower) / bandRange
		} else {
			position = 0.5
		}
		switch {
		case position > 0.7:
			a.Direction = core.Bullish
			strength, confidence = 40, 55
		case position < 0.3:
			a.Direction = core.Bearish
			strength, confidence = 40, 55
		default:
			a.Direction = core.Neutral
			strength, confidence = 20, 45
		}
	}

	a.Strength = int(math.Round(strength))
	a.Confidence = int(math.Round(confidence))
	return a
}
