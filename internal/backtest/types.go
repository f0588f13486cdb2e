package backtest

import (
	"time"

	"github.com/condorlabs/condor/internal/core"
)

// Trade is one completed simulated position, finalized when its exit
// condition fires and immutable thereafter. P&L and the profit/loss ceilings
// are position-level, already scaled by lot size.
type Trade struct {
	EntryDate  time.Time      `json:"entryDate"`
	ExitDate   time.Time      `json:"exitDate"`
	EntryPrice float64        `json:"entryPrice"`
	ExitPrice  float64        `json:"exitPrice"`
	PL         float64        `json:"pl"`
	PLPercent  float64        `json:"plPercent"` // percent of capital risked on this trade
	MaxProfit  float64        `json:"maxProfit"`
	MaxLoss    float64        `json:"maxLoss"`
	Signal     core.Direction `json:"signal"`
	Confidence int            `json:"confidence"`
}

// IsWin reports whether the trade closed profitable.
func (t Trade) IsWin() bool {
	return t.PL > 0
}

// IsLoss reports whether the trade closed at a loss. Zero-P&L trades are
// neither wins nor losses.
func (t Trade) IsLoss() bool {
	return t.PL < 0
}

// Result is the output record of one simulation run. Field names and
// semantics are the on-disk contract consumed by dashboards and history
// views: percentages are already multiplied by 100. Trades carries the full
// ledger for report archival; the flat statistics are what gets persisted.
type Result struct {
	ID            string    `json:"id"`
	Underlying    string    `json:"underlying"`
	Tier          core.Tier `json:"strategy"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	TotalTrades   int       `json:"totalTrades"`
	WinningTrades int       `json:"winningTrades"`
	LosingTrades  int       `json:"losingTrades"`
	TotalPL       float64   `json:"totalPL"`
	MaxDrawdown   float64   `json:"maxDrawdown"` // percent
	SharpeRatio   float64   `json:"sharpeRatio"`
	WinRate       float64   `json:"winRate"` // percent
	AvgWin        float64   `json:"avgWin"`
	AvgLoss       float64   `json:"avgLoss"` // absolute value
	CreatedAt     time.Time `json:"createdAt"`

	Trades []Trade `json:"trades,omitempty"`
}
