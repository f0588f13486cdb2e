package history

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/condorlabs/condor/internal/core"
)

// BarWriter is the write side of a bar store. Both SQLiteStore and
// MemoryProvider satisfy it.
type BarWriter interface {
	ReplaceBars(ctx context.Context, underlying string, bars []core.Bar) error
}

// SeedSpec describes one synthetic series to generate.
type SeedSpec struct {
	Underlying string
	Start      time.Time
	End        time.Time
	StartPrice float64
	Seed       int64
}

// DefaultSeedSpecs covers the two index underlyings the simulator ships
// with, three calendar years each.
func DefaultSeedSpecs() []SeedSpec {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return []SeedSpec{
		{Underlying: "NIFTY", Start: start, End: end, StartPrice: 18000, Seed: 20220101},
		{Underlying: "BANKNIFTY", Start: start, End: end, StartPrice: 42000, Seed: 20220102},
	}
}

// GenerateBars produces a deterministic synthetic daily series: a gentle
// upward drift with seasonally modulated volatility, weekends skipped. The
// same spec always yields the same bars.
func GenerateBars(spec SeedSpec) []core.Bar {
	rng := rand.New(rand.NewSource(spec.Seed))

	var bars []core.Bar
	price := spec.StartPrice
	for d := spec.Start; !d.After(spec.End); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		// Volatility breathes over the year around a 1.2% daily base.
		seasonal := 1 + 0.1*math.Sin(float64(d.YearDay())/365*2*math.Pi)
		volatility := 0.012 * seasonal
		change := 0.0003 + volatility*(rng.Float64()*2-1)

		open := price
		price = price * (1 + change)
		if price < 100 {
			price = 100
		}

		high := math.Max(open, price) * (1 + rng.Float64()*0.004)
		low := math.Min(open, price) * (1 - rng.Float64()*0.004)

		bars = append(bars, core.Bar{
			Date:   d,
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(price),
			Volume: 400000 + rng.Int63n(800001),
		})
	}
	return bars
}

// Seed generates and stores the series for every spec, replacing whatever
// was there before.
func Seed(ctx context.Context, w BarWriter, specs []SeedSpec) (int, error) {
	total := 0
	for _, spec := range specs {
		bars := GenerateBars(spec)
		if err := w.ReplaceBars(ctx, spec.Underlying, bars); err != nil {
			return total, err
		}
		total += len(bars)
	}
	return total, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
