// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	handlers "github.com/condorlabs/condor/internal/api/handler/api"
	"github.com/condorlabs/condor/internal/api/job"
	"github.com/condorlabs/condor/internal/api/middleware"
	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/chain"
	"github.com/condorlabs/condor/internal/config"
	"github.com/condorlabs/condor/internal/history"
	"github.com/condorlabs/condor/internal/llm"
	"github.com/condorlabs/condor/internal/metrics"
	"github.com/condorlabs/condor/internal/storage/archive"
	"github.com/condorlabs/condor/internal/storage/results"
)

// Deps carries everything the server routes over. Archiver, Analyst and
// Registry may be nil; the corresponding features are then disabled.
type Deps struct {
	Engine   *backtest.Engine
	History  history.Provider
	Bars     history.BarWriter
	Results  results.Store
	Chain    chain.Provider
	Archiver *archive.ReportArchiver
	Analyst  llm.Provider
	Registry *metrics.Registry
	Defaults config.BacktestConfig
}

// Server is the HTTP server for the simulator.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// NewServer creates a new HTTP server with all routes wired.
func NewServer(cfg config.ServerConfig, deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}
	s.setupRoutes(cfg, deps)
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg config.ServerConfig, deps Deps) {
	jobTTL := time.Duration(cfg.JobTTLHours) * time.Hour
	if jobTTL <= 0 {
		jobTTL = time.Hour
	}
	maxJobs := cfg.MaxJobs
	if maxJobs <= 0 {
		maxJobs = 100
	}
	jobStore := job.NewStore(maxJobs, jobTTL)

	backtests := handlers.NewBacktestHandler(
		jobStore, deps.Engine, deps.Results,
		deps.Archiver, deps.Analyst, deps.Registry, deps.Defaults, s.logger,
	)
	resultsHandler := handlers.NewResultsHandler(deps.Results)
	signals := handlers.NewSignalsHandler(deps.History, deps.Registry)
	suggestions := handlers.NewSuggestionsHandler(deps.Chain)
	seed := handlers.NewSeedHandler(deps.Bars, deps.Registry)
	trailing := handlers.NewTrailingHandler()

	api := http.NewServeMux()
	api.HandleFunc("POST /api/backtests", backtests.Create)
	api.HandleFunc("GET /api/backtests/{id}", func(w http.ResponseWriter, r *http.Request) {
		backtests.GetStatus(w, r, r.PathValue("id"))
	})
	api.HandleFunc("GET /api/results", resultsHandler.List)
	api.HandleFunc("GET /api/results/{id}", func(w http.ResponseWriter, r *http.Request) {
		resultsHandler.Get(w, r, r.PathValue("id"))
	})
	api.HandleFunc("POST /api/seed", seed.Seed)
	api.HandleFunc("GET /api/signals/{underlying}", func(w http.ResponseWriter, r *http.Request) {
		signals.Analyze(w, r, r.PathValue("underlying"))
	})
	api.HandleFunc("GET /api/suggestions/{underlying}/{expiry}", func(w http.ResponseWriter, r *http.Request) {
		suggestions.Suggest(w, r, r.PathValue("underlying"), r.PathValue("expiry"))
	})
	api.HandleFunc("POST /api/trailing-stop", trailing.Calculate)

	var protected http.Handler = api
	protected = middleware.APIKeyAuth(cfg.APIKey)(protected)
	if deps.Registry != nil {
		protected = metrics.HTTPMiddleware(deps.Registry)(protected)
	}
	protected = metrics.LoggingMiddleware(s.logger)(protected)

	s.mux.Handle("/api/", protected)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	if deps.Registry != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the root mux, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
