package condor

import "math"

// Strikes holds the four strikes of a position, ordered
// putBuy < putSell <= spot <= callSell < callBuy.
type Strikes struct {
	PutBuy   float64
	PutSell  float64
	CallSell float64
	CallBuy  float64
}

// LegPrices holds the option premium of each leg.
type LegPrices struct {
	PutBuy   float64
	PutSell  float64
	CallSell float64
	CallBuy  float64
}

// Metrics describes a position's risk profile. Probability is a geometric
// heuristic (profit-zone width over total strike range), not a statistical
// estimate.
type Metrics struct {
	MaxProfit      float64
	MaxLoss        float64
	RiskReward     float64
	LowerBreakeven float64
	UpperBreakeven float64
	Probability    int // percent, clamped to [0,100]
}

// ComputeMetrics derives the risk profile from strikes and leg prices.
// RiskReward is 0 whenever MaxLoss is non-positive so a degenerate structure
// never divides by zero.
func ComputeMetrics(strikes Strikes, legs LegPrices) Metrics {
	netCredit := (legs.PutSell + legs.CallSell) - (legs.PutBuy + legs.CallBuy)
	putSpread := strikes.PutSell - strikes.PutBuy
	callSpread := strikes.CallBuy - strikes.CallSell
	maxSpread := math.Max(putSpread, callSpread)

	m := Metrics{
		MaxProfit:      netCredit,
		MaxLoss:        maxSpread - netCredit,
		LowerBreakeven: strikes.PutSell - netCredit,
		UpperBreakeven: strikes.CallSell + netCredit,
	}
	if m.MaxLoss > 0 {
		m.RiskReward = m.MaxProfit / m.MaxLoss
	}

	totalRange := strikes.CallBuy - strikes.PutBuy
	if totalRange > 0 {
		profitZone := m.UpperBreakeven - m.LowerBreakeven
		p := int(math.Round(profitZone / totalRange * 100))
		m.Probability = clampPercent(p)
	}
	return m
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
