package backtest

import "math"

// riskFreeRate is the assumed annual risk-free rate in the same percent
// units as per-trade returns. The Sharpe computation does not annualize or
// time-weight returns; it is a deliberate simplification carried over from
// the strategy's original calibration.
const riskFreeRate = 6.0

// Summary holds the statistics reduced from a trade ledger.
type Summary struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	TotalPL       float64
	WinRate       float64 // percent
	AvgWin        float64
	AvgLoss       float64 // absolute value
	SharpeRatio   float64
}

// Aggregate reduces a finalized trade ledger into summary statistics. It is
// a pure function of the ledger: calling it twice on the same ledger yields
// identical results. Zero-P&L trades count toward the total but sit in
// neither the winning nor the losing bucket. Every denominator is guarded so
// an empty or degenerate ledger produces zeros, never NaN.
func Aggregate(trades []Trade) Summary {
	var s Summary
	s.TotalTrades = len(trades)
	if s.TotalTrades == 0 {
		return s
	}

	var winSum, lossSum float64
	for _, t := range trades {
		s.TotalPL += t.PL
		switch {
		case t.IsWin():
			s.WinningTrades++
			winSum += t.PL
		case t.IsLoss():
			s.LosingTrades++
			lossSum += t.PL
		}
	}

	s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	if s.WinningTrades > 0 {
		s.AvgWin = winSum / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = math.Abs(lossSum / float64(s.LosingTrades))
	}
	s.SharpeRatio = sharpe(trades)
	return s
}

// sharpe computes (mean - riskFreeRate) / stddev over per-trade percent
// returns, with the population standard deviation. Zero when the ledger is
// empty or the returns have no variance.
func sharpe(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	var sum float64
	for _, t := range trades {
		sum += t.PLPercent
	}
	mean := sum / float64(len(trades))

	var variance float64
	for _, t := range trades {
		d := t.PLPercent - mean
		variance += d * d
	}
	stdDev := math.Sqrt(variance / float64(len(trades)))
	if stdDev == 0 {
		return 0
	}
	return (mean - riskFreeRate) / stdDev
}
