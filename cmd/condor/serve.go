package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/condorlabs/condor/internal/api"
	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/chain"
	"github.com/condorlabs/condor/internal/history"
	"github.com/condorlabs/condor/internal/llm"
	"github.com/condorlabs/condor/internal/llm/factory"
	"github.com/condorlabs/condor/internal/logger"
	"github.com/condorlabs/condor/internal/metrics"
	"github.com/condorlabs/condor/internal/storage/archive"
	"github.com/condorlabs/condor/internal/storage/results"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the condor server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize logger
	log := logger.Must(debug)
	defer log.Sync()

	// Load config
	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	log.Info("starting condor server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	// Hot storage: one sqlite file shared by bars and results
	barStore, err := history.NewSQLiteStore(cfg.Storage.Hot.Path)
	if err != nil {
		return fmt.Errorf("opening bar store: %w", err)
	}
	defer barStore.Close()

	resultStore, err := results.NewSQLiteStore(cfg.Storage.Hot.Path)
	if err != nil {
		return fmt.Errorf("opening result store: %w", err)
	}
	defer resultStore.Close()

	// Cold storage for run reports; nil when not configured
	var archiver *archive.ReportArchiver
	cold, err := buildColdStorage(cfg.Storage.Cold)
	if err != nil {
		return fmt.Errorf("configuring cold storage: %w", err)
	}
	if cold != nil {
		archiver = archive.NewReportArchiver(cold, log)
		log.Info("report archiving enabled", zap.String("type", cfg.Storage.Cold.Type))
	}

	// Optional LLM commentary
	var analyst llm.Provider
	if cfg.LLM.Provider != "" {
		analyst, err = factory.New(cfg.LLM)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}
		log.Info("run commentary enabled", zap.String("provider", cfg.LLM.Provider))
	}

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
	}

	server := api.NewServer(cfg.Server, api.Deps{
		Engine:   backtest.NewEngine(barStore, log),
		History:  barStore,
		Bars:     barStore,
		Results:  resultStore,
		Chain:    chain.NewSynthetic(cfg.Chain.Spots),
		Archiver: archiver,
		Analyst:  analyst,
		Registry: registry,
		Defaults: cfg.Backtest,
	}, log)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down condor server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
