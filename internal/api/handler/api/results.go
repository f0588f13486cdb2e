// internal/api/handler/api/results.go
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/core"
	"github.com/condorlabs/condor/internal/storage/results"
)

const defaultListLimit = 50

// ResultsHandler serves stored backtest results.
type ResultsHandler struct {
	store results.Store
}

// NewResultsHandler creates a results handler.
func NewResultsHandler(store results.Store) *ResultsHandler {
	return &ResultsHandler{store: store}
}

// List returns result summaries, newest first. Supports underlying, tier,
// limit and offset query parameters.
func (h *ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := results.ListFilter{
		Underlying: q.Get("underlying"),
		Limit:      defaultListLimit,
	}
	if tierName := q.Get("tier"); tierName != "" {
		tier, err := core.ParseTier(tierName)
		if err != nil {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrConfigInvalid, err))
			return
		}
		filter.Tier = tier
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrConfigInvalid, err))
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrConfigInvalid, err))
			return
		}
		filter.Offset = n
	}

	list, err := h.store.List(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	total, err := h.store.Count(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"results": list,
		"total":   total,
	})
}

// Get returns one result with its full trade ledger.
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	result, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			response.Error(w, http.StatusNotFound, err)
			return
		}
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
