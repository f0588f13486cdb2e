// internal/api/handler/api/suggestions.go
package api

import (
	"net/http"

	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/chain"
	"github.com/condorlabs/condor/internal/condor"
)

// SuggestionsHandler serves tiered position suggestions off the option chain.
type SuggestionsHandler struct {
	provider chain.Provider
}

// NewSuggestionsHandler creates a suggestions handler.
func NewSuggestionsHandler(provider chain.Provider) *SuggestionsHandler {
	return &SuggestionsHandler{provider: provider}
}

// Suggest returns one candidate position per tier for an underlying and
// expiry, sorted by probability.
func (h *SuggestionsHandler) Suggest(w http.ResponseWriter, r *http.Request, underlying, expiry string) {
	snap, err := h.provider.Snapshot(r.Context(), underlying)
	if err != nil {
		response.Error(w, http.StatusNotFound, err)
		return
	}

	quotes, err := h.provider.Chain(r.Context(), underlying, expiry)
	if err != nil {
		response.Error(w, http.StatusNotFound, err)
		return
	}

	suggestions := condor.Suggest(quotes, snap.SpotPrice)

	response.JSON(w, http.StatusOK, map[string]any{
		"underlying":  underlying,
		"expiry":      expiry,
		"spotPrice":   snap.SpotPrice,
		"suggestions": suggestions,
	})
}
