// internal/api/handler/api/signals.go
package api

import (
	"net/http"
	"time"

	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/core"
	"github.com/condorlabs/condor/internal/history"
	"github.com/condorlabs/condor/internal/metrics"
	"github.com/condorlabs/condor/internal/signal"
)

// signalLookback bounds how far back the handler reads when assembling the
// detection window.
const signalLookback = 60 * 24 * time.Hour

// SignalView is the JSON shape of a breakout analysis.
type SignalView struct {
	Underlying   string     `json:"underlying"`
	Direction    string     `json:"direction"`
	Strength     int        `json:"strength"`
	Confidence   int        `json:"confidence"`
	Breakout     bool       `json:"breakout"`
	EntryPoint   float64    `json:"entryPoint,omitempty"`
	StopLoss     float64    `json:"stopLoss,omitempty"`
	UpperLimit   float64    `json:"upperWickLimit"`
	LowerLimit   float64    `json:"lowerWickLimit"`
	CurrentPrice float64    `json:"currentPrice"`
	Changes      []float64  `json:"percentChanges"`
	AsOf         *time.Time `json:"asOf,omitempty"`
}

// SignalsHandler serves breakout analyses over stored history.
type SignalsHandler struct {
	provider history.Provider
	registry *metrics.Registry
	now      func() time.Time
}

// NewSignalsHandler creates a signals handler.
func NewSignalsHandler(provider history.Provider, registry *metrics.Registry) *SignalsHandler {
	return &SignalsHandler{provider: provider, registry: registry, now: time.Now}
}

// Analyze returns the breakout reading over the most recent bars for an
// underlying. A series shorter than the detection window degrades to the
// neutral baseline reading rather than failing.
func (h *SignalsHandler) Analyze(w http.ResponseWriter, r *http.Request, underlying string) {
	now := h.now().UTC()
	bars, err := h.provider.Load(r.Context(), underlying, now.Add(-signalLookback), now)
	if err != nil {
		response.Error(w, http.StatusInternalServerError,
			core.WrapError(core.ErrNoData, err))
		return
	}

	analysis := signal.Detect(bars)
	if h.registry != nil {
		h.registry.RecordSignalAnalysis(string(analysis.Direction))
	}

	view := SignalView{
		Underlying:   underlying,
		Direction:    string(analysis.Direction),
		Strength:     analysis.Strength,
		Confidence:   analysis.Confidence,
		Breakout:     analysis.Breakout,
		EntryPoint:   analysis.EntryPoint,
		StopLoss:     analysis.StopLoss,
		UpperLimit:   analysis.UpperLimit,
		LowerLimit:   analysis.LowerLimit,
		CurrentPrice: analysis.CurrentPrice,
		Changes:      analysis.Changes[:],
	}
	if n := len(bars); n > 0 {
		asOf := bars[n-1].Date
		view.AsOf = &asOf
	}

	response.JSON(w, http.StatusOK, view)
}
