// Package condor holds the iron condor payoff arithmetic: position P&L at a
// given underlying price, strategy metrics derived from the four legs, the
// trailing stop evaluator, and the strike suggestion builder.
package condor

// ProfitLoss computes the iron condor P&L at the given spot price. It starts
// from the net premium credited at entry and subtracts the intrusion loss of
// each wing independently; spot cannot breach both wings at once, so the two
// subtractions never compound.
func ProfitLoss(spot, putBuyStrike, putSellStrike, callSellStrike, callBuyStrike, netPremium float64) float64 {
	pl := netPremium

	// Put spread
	if spot <= putBuyStrike {
		pl -= putSellStrike - putBuyStrike
	} else if spot < putSellStrike {
		pl -= putSellStrike - spot
	}

	// Call spread
	if spot >= callBuyStrike {
		pl -= callBuyStrike - callSellStrike
	} else if spot > callSellStrike {
		pl -= spot - callSellStrike
	}

	return pl
}
