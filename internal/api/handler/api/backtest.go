// internal/api/handler/api/backtest.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/condorlabs/condor/internal/api/job"
	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/config"
	"github.com/condorlabs/condor/internal/core"
	"github.com/condorlabs/condor/internal/llm"
	"github.com/condorlabs/condor/internal/metrics"
	"github.com/condorlabs/condor/internal/storage/archive"
	"github.com/condorlabs/condor/internal/storage/results"
)

const backtestTimeout = 5 * time.Minute

// BacktestRequest is the request body for starting a backtest run.
type BacktestRequest struct {
	Underlying     string  `json:"underlying"`
	Tier           string  `json:"tier"`
	Start          string  `json:"startDate"`
	End            string  `json:"endDate"`
	InitialCapital float64 `json:"initialCapital,omitempty"`
	RiskPerTrade   float64 `json:"riskPerTrade,omitempty"`
	Seed           int64   `json:"seed,omitempty"`
	Commentary     bool    `json:"commentary,omitempty"`
}

// backtestOutcome is the job result payload: the run plus the optional
// analyst note.
type backtestOutcome struct {
	*backtest.Result
	Commentary string `json:"commentary,omitempty"`
}

// BacktestHandler handles backtest API requests.
type BacktestHandler struct {
	jobStore *job.Store
	engine   *backtest.Engine
	store    results.Store
	archiver *archive.ReportArchiver
	analyst  llm.Provider
	registry *metrics.Registry
	defaults config.BacktestConfig
	logger   *zap.Logger
}

// NewBacktestHandler creates a new backtest handler. The archiver and
// analyst are optional; the handler skips those steps when they are nil.
func NewBacktestHandler(
	jobStore *job.Store,
	engine *backtest.Engine,
	store results.Store,
	archiver *archive.ReportArchiver,
	analyst llm.Provider,
	registry *metrics.Registry,
	defaults config.BacktestConfig,
	logger *zap.Logger,
) *BacktestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BacktestHandler{
		jobStore: jobStore,
		engine:   engine,
		store:    store,
		archiver: archiver,
		analyst:  analyst,
		registry: registry,
		defaults: defaults,
		logger:   logger,
	}
}

// Create starts a new backtest job.
func (h *BacktestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	cfg, err := h.buildConfig(req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	// Create job
	j := h.jobStore.Create("backtest")

	// Copy values before starting goroutine to avoid race
	jobID := j.ID
	status := j.Status

	// Run backtest in background
	go h.runBacktest(jobID, cfg, req.Commentary)

	response.JSON(w, http.StatusAccepted, map[string]any{
		"job_id": jobID,
		"status": status,
	})
}

// buildConfig merges the request with the configured defaults and validates.
func (h *BacktestHandler) buildConfig(req BacktestRequest) (backtest.Config, error) {
	if req.Underlying == "" {
		return backtest.Config{}, core.WrapError(core.ErrConfigMissing, nil)
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		return backtest.Config{}, core.WrapError(core.ErrConfigInvalid, err)
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		return backtest.Config{}, core.WrapError(core.ErrConfigInvalid, err)
	}

	tierName := req.Tier
	if tierName == "" {
		tierName = h.defaults.Tier
	}
	tier, err := core.ParseTier(tierName)
	if err != nil {
		return backtest.Config{}, core.WrapError(core.ErrConfigInvalid, err)
	}

	cfg := backtest.Config{
		Underlying:     req.Underlying,
		Start:          start,
		End:            end,
		Tier:           tier,
		InitialCapital: req.InitialCapital,
		RiskPerTrade:   req.RiskPerTrade,
		Seed:           req.Seed,
	}
	if cfg.InitialCapital == 0 {
		cfg.InitialCapital = h.defaults.InitialCapital
	}
	if cfg.RiskPerTrade == 0 {
		cfg.RiskPerTrade = h.defaults.RiskPerTrade
	}
	if cfg.Seed == 0 {
		cfg.Seed = h.defaults.Seed
	}

	if err := cfg.Validate(); err != nil {
		return backtest.Config{}, err
	}
	return cfg, nil
}

// runBacktest executes the run, persists it, and updates job status.
func (h *BacktestHandler) runBacktest(jobID string, cfg backtest.Config, withCommentary bool) {
	h.jobStore.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusRunning
	})

	ctx, cancel := context.WithTimeout(context.Background(), backtestTimeout)
	defer cancel()

	started := time.Now()
	result, err := h.engine.Run(ctx, cfg)
	if err != nil {
		if h.registry != nil {
			h.registry.RecordBacktest("failed", time.Since(started).Seconds(), 0)
		}
		h.jobStore.Update(jobID, func(j *job.Job) {
			j.Status = job.StatusFailed
			j.Error = core.WrapError(core.ErrNoData, err)
		})
		return
	}

	if h.registry != nil {
		h.registry.RecordBacktest("completed", time.Since(started).Seconds(), result.TotalTrades)
	}

	if err := h.store.Save(ctx, result); err != nil {
		h.jobStore.Update(jobID, func(j *job.Job) {
			j.Status = job.StatusFailed
			j.Error = core.WrapError(core.ErrStoreFailed, err)
		})
		return
	}

	// Cold-store the full report; failures are logged, not fatal.
	if h.archiver != nil {
		if err := h.archiver.Archive(ctx, result); err != nil {
			h.logger.Warn("archiving run failed",
				zap.String("id", result.ID), zap.Error(err))
		}
	}

	outcome := backtestOutcome{Result: result}
	if withCommentary && h.analyst != nil {
		note, err := llm.Commentary(ctx, h.analyst, result)
		if err != nil {
			h.logger.Warn("commentary generation failed",
				zap.String("id", result.ID), zap.Error(err))
		} else {
			outcome.Commentary = note
		}
	}

	h.jobStore.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusComplete
		j.Progress = 100
		j.Result = outcome
	})
}

// GetStatus returns the status of a backtest job.
func (h *BacktestHandler) GetStatus(w http.ResponseWriter, r *http.Request, jobID string) {
	j, err := h.jobStore.Get(jobID)
	if err != nil {
		response.Error(w, http.StatusNotFound, err)
		return
	}

	resp := map[string]any{
		"job_id":   j.ID,
		"status":   j.Status,
		"progress": j.Progress,
	}

	if j.Status == job.StatusComplete {
		resp["result"] = j.Result
	}
	if j.Status == job.StatusFailed && j.Error != nil {
		resp["error"] = map[string]string{
			"code":    j.Error.Code,
			"message": j.Error.Message,
		}
	}

	response.JSON(w, http.StatusOK, resp)
}
