// internal/api/handler/api/trailing.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/condor"
	"github.com/condorlabs/condor/internal/core"
)

const defaultTrailPercent = 10

// TrailingStopRequest asks where an open position sits relative to its
// trailing exit level.
type TrailingStopRequest struct {
	CurrentPL    float64 `json:"currentPL"`
	MaxProfit    float64 `json:"maxProfit"`
	TrailPercent float64 `json:"trailPercent"`
}

// TrailingHandler serves the trailing stop calculator.
type TrailingHandler struct{}

// NewTrailingHandler creates a trailing stop handler.
func NewTrailingHandler() *TrailingHandler {
	return &TrailingHandler{}
}

// Calculate evaluates the trailing stop for a position snapshot.
func (h *TrailingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req TrailingStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	if req.MaxProfit <= 0 {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("maxProfit must be positive, got %v", req.MaxProfit)))
		return
	}
	trail := req.TrailPercent
	if trail == 0 {
		trail = defaultTrailPercent
	}
	if trail < 0 || trail > 100 {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("trailPercent must be in [0,100], got %v", trail)))
		return
	}

	state := condor.TrailingStop(req.CurrentPL, req.MaxProfit, trail)

	response.JSON(w, http.StatusOK, map[string]any{
		"currentPL":        state.CurrentPL,
		"currentPLPercent": state.CurrentPLPercent,
		"trailLevel":       state.TrailLevel,
		"trailLevelPct":    state.TrailLevelPct,
		"status":           state.Status,
	})
}
