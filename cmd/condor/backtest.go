package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/core"
	"github.com/condorlabs/condor/internal/history"
	"github.com/condorlabs/condor/internal/logger"
	"github.com/condorlabs/condor/internal/storage/results"
)

var (
	backtestFrom    string
	backtestTo      string
	backtestTier    string
	backtestCapital float64
	backtestRisk    float64
	backtestSeed    int64
	backtestSave    bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [underlying]",
	Short: "Run an iron condor backtest",
	Long:  "Run the iron condor simulation against stored historical data and show performance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktestCmd,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "Start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "End date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestTier, "tier", "", "Strategy tier: CONSERVATIVE, MODERATE or AGGRESSIVE")
	backtestCmd.Flags().Float64Var(&backtestCapital, "capital", 0, "Initial capital (default from config)")
	backtestCmd.Flags().Float64Var(&backtestRisk, "risk", 0, "Percent of capital risked per trade (default from config)")
	backtestCmd.Flags().Int64Var(&backtestSeed, "seed", 0, "Walk jitter seed, 0 draws from the clock")
	backtestCmd.Flags().BoolVar(&backtestSave, "save", false, "Persist the result to hot storage")

	backtestCmd.MarkFlagRequired("from")
	backtestCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	underlying := strings.ToUpper(args[0])

	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	fromDate, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
	}
	toDate, err := time.Parse("2006-01-02", backtestTo)
	if err != nil {
		return fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
	}
	if toDate.Before(fromDate) {
		return fmt.Errorf("end date must be after start date")
	}

	tierName := cfg.Backtest.Tier
	if backtestTier != "" {
		tierName = backtestTier
	}
	tier, err := core.ParseTier(tierName)
	if err != nil {
		return err
	}

	runCfg := backtest.Config{
		Underlying:     underlying,
		Start:          fromDate,
		End:            toDate,
		Tier:           tier,
		InitialCapital: cfg.Backtest.InitialCapital,
		RiskPerTrade:   cfg.Backtest.RiskPerTrade,
		Seed:           backtestSeed,
	}
	if backtestCapital > 0 {
		runCfg.InitialCapital = backtestCapital
	}
	if backtestRisk > 0 {
		runCfg.RiskPerTrade = backtestRisk
	}
	if runCfg.Seed == 0 {
		runCfg.Seed = cfg.Backtest.Seed
	}
	if err := runCfg.Validate(); err != nil {
		return err
	}

	barStore, err := history.NewSQLiteStore(cfg.Storage.Hot.Path)
	if err != nil {
		return fmt.Errorf("opening bar store: %w", err)
	}
	defer barStore.Close()

	engine := backtest.NewEngine(barStore, log)

	result, err := engine.Run(cmd.Context(), runCfg)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	printResult(result, runCfg)

	if backtestSave {
		resultStore, err := results.NewSQLiteStore(cfg.Storage.Hot.Path)
		if err != nil {
			return fmt.Errorf("opening result store: %w", err)
		}
		defer resultStore.Close()

		if err := resultStore.Save(context.Background(), result); err != nil {
			return fmt.Errorf("saving result: %w", err)
		}
		fmt.Printf("\nSaved as %s\n", result.ID)
	}

	return nil
}

func printResult(r *backtest.Result, cfg backtest.Config) {
	fmt.Println("=== Iron Condor Backtest ===")
	fmt.Printf("Underlying: %s\n", r.Underlying)
	fmt.Printf("Tier:       %s\n", r.Tier)
	fmt.Printf("Period:     %s to %s\n", r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	fmt.Printf("Capital:    %.2f (risk %.1f%% per trade)\n", cfg.InitialCapital, cfg.RiskPerTrade)
	fmt.Println()
	fmt.Printf("Trades:       %d (%d wins, %d losses)\n", r.TotalTrades, r.WinningTrades, r.LosingTrades)
	fmt.Printf("Win rate:     %.1f%%\n", r.WinRate)
	fmt.Printf("Total P&L:    %.2f\n", r.TotalPL)
	fmt.Printf("Avg win:      %.2f\n", r.AvgWin)
	fmt.Printf("Avg loss:     %.2f\n", r.AvgLoss)
	fmt.Printf("Max drawdown: %.2f%%\n", r.MaxDrawdown)
	fmt.Printf("Sharpe ratio: %.2f\n", r.SharpeRatio)
}
