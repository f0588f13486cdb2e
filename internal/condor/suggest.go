package condor

import (
	"sort"

	"github.com/condorlabs/condor/internal/chain"
	"github.com/condorlabs/condor/internal/core"
)

// Suggestion is one candidate position built from a live chain, priced with
// actual leg premiums rather than the backtester's synthetic credit.
type Suggestion struct {
	Underlying  string
	Expiry      string
	Strikes     Strikes
	RiskReward  float64
	Probability int
	MaxProfit   float64
	MaxLoss     float64
	Tier        core.Tier
}

// Suggest builds one candidate per tier around the at-the-money strike:
// conservative uses the widest wings, aggressive the tightest. Returns nil
// when the chain is too short to bracket the spot. Results are sorted by
// probability, highest first.
func Suggest(quotes []chain.Quote, spot float64) []Suggestion {
	if len(quotes) < 5 {
		return nil
	}

	atm := -1
	for i, q := range quotes {
		if q.Strike >= spot {
			atm = i
			break
		}
	}
	if atm < 0 {
		return nil
	}

	var out []Suggestion

	if atm >= 2 && atm < len(quotes)-2 {
		s := build(quotes[atm-2], quotes[atm-1], quotes[atm+1], quotes[atm+2], core.TierConservative)
		s.Probability = maxInt(85, s.Probability)
		out = append(out, s)
	}

	if atm >= 1 && atm < len(quotes)-1 {
		s := build(quotes[atm-1], quotes[atm], quotes[atm], quotes[atm+1], core.TierModerate)
		s.Probability = maxInt(70, s.Probability-10)
		out = append(out, s)

		a := build(quotes[atm-1], quotes[atm], quotes[atm], quotes[atm+1], core.TierAggressive)
		a.Probability = maxInt(55, a.Probability-20)
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	return out
}

func build(putBuy, putSell, callSell, callBuy chain.Quote, tier core.Tier) Suggestion {
	strikes := Strikes{
		PutBuy:   putBuy.Strike,
		PutSell:  putSell.Strike,
		CallSell: callSell.Strike,
		CallBuy:  callBuy.Strike,
	}
	m := ComputeMetrics(strikes, LegPrices{
		PutBuy:   putBuy.PutPrice,
		PutSell:  putSell.PutPrice,
		CallSell: callSell.CallPrice,
		CallBuy:  callBuy.CallPrice,
	})
	return Suggestion{
		Underlying:  putSell.Underlying,
		Expiry:      putSell.Expiry,
		Strikes:     strikes,
		RiskReward:  m.RiskReward,
		Probability: m.Probability,
		MaxProfit:   m.MaxProfit,
		MaxLoss:     m.MaxLoss,
		Tier:        tier,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
