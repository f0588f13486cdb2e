// internal/api/handler/api/seed.go
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/core"
	"github.com/condorlabs/condor/internal/history"
	"github.com/condorlabs/condor/internal/metrics"
)

// SeedRequest optionally overrides the default seeding specs.
type SeedRequest struct {
	Underlying string  `json:"underlying,omitempty"`
	Start      string  `json:"startDate,omitempty"`
	End        string  `json:"endDate,omitempty"`
	StartPrice float64 `json:"startPrice,omitempty"`
	Seed       int64   `json:"seed,omitempty"`
}

// SeedHandler loads synthetic historical series into the bar store.
type SeedHandler struct {
	writer   history.BarWriter
	registry *metrics.Registry
}

// NewSeedHandler creates a seed handler.
func NewSeedHandler(writer history.BarWriter, registry *metrics.Registry) *SeedHandler {
	return &SeedHandler{writer: writer, registry: registry}
}

// Seed replaces stored series with generated ones. An empty body seeds the
// default underlyings; a body with an underlying seeds just that one.
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	specs := history.DefaultSeedSpecs()

	var req SeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	if req.Underlying != "" {
		spec, err := h.buildSpec(req)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}
		specs = []history.SeedSpec{spec}
	}

	total, err := history.Seed(r.Context(), h.writer, specs)
	if err != nil {
		response.Error(w, http.StatusInternalServerError,
			core.WrapError(core.ErrStoreFailed, err))
		return
	}

	seeded := make(map[string]int, len(specs))
	for _, spec := range specs {
		n := len(history.GenerateBars(spec))
		seeded[spec.Underlying] = n
		if h.registry != nil {
			h.registry.SetSeededBars(spec.Underlying, n)
		}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"barsSeeded":  total,
		"underlyings": seeded,
	})
}

func (h *SeedHandler) buildSpec(req SeedRequest) (history.SeedSpec, error) {
	spec := history.SeedSpec{
		Underlying: req.Underlying,
		Start:      time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		StartPrice: 18000,
		Seed:       req.Seed,
	}
	if req.Start != "" {
		start, err := time.Parse("2006-01-02", req.Start)
		if err != nil {
			return history.SeedSpec{}, core.WrapError(core.ErrConfigInvalid, err)
		}
		spec.Start = start
	}
	if req.End != "" {
		end, err := time.Parse("2006-01-02", req.End)
		if err != nil {
			return history.SeedSpec{}, core.WrapError(core.ErrConfigInvalid, err)
		}
		spec.End = end
	}
	if !spec.End.After(spec.Start) {
		return history.SeedSpec{}, core.WrapError(core.ErrConfigInvalid, nil)
	}
	if req.StartPrice > 0 {
		spec.StartPrice = req.StartPrice
	}
	if spec.Seed == 0 {
		spec.Seed = spec.Start.Unix()
	}
	return spec, nil
}
