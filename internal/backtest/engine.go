package backtest

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/condorlabs/condor/internal/condor"
	"github.com/condorlabs/condor/internal/core"
	"github.com/condorlabs/condor/internal/history"
	"github.com/condorlabs/condor/internal/signal"
)

// Walk policy constants. The jittered step and the 7-day exit horizon
// approximate a realistic trade cadence without a full market simulator.
const (
	minBars        = 10 // below this the run proceeds with degraded accuracy
	exitHorizon    = 7  // trading days an open position is given before time exit
	strikeStepSize = 50 // strikes round to the nearest 50-point increment

	premiumRate      = 0.15 // synthetic net premium as a fraction of strike width
	profitTargetFrac = 0.8  // exit once this fraction of max profit is captured
	stopLossFrac     = 0.5  // exit once this fraction of max loss is reached
)

// Engine replays a historical series, opening synthetic iron condor
// positions on breakout signals and closing them on a profit target, stop
// loss, or time exit. Engines are stateless between runs: all per-run state
// lives on the stack of Run, so one Engine may serve concurrent runs as long
// as the provider supports concurrent reads.
type Engine struct {
	provider history.Provider
	logger   *zap.Logger
}

// NewEngine creates an Engine reading from the given provider.
func NewEngine(provider history.Provider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{provider: provider, logger: logger}
}

// candidate is an ephemeral position derived from the entry price and the
// tier's strike width. The premium is a synthetic approximation, not an
// options-model price.
type candidate struct {
	putBuy, putSell, callSell, callBuy float64
	netPremium                         float64
	maxProfit                          float64
	maxLoss                            float64
}

func newCandidate(entryPrice, width float64) candidate {
	c := candidate{
		putBuy:     roundToStrike(entryPrice - width),
		putSell:    roundToStrike(entryPrice - width/2),
		callSell:   roundToStrike(entryPrice + width/2),
		callBuy:    roundToStrike(entryPrice + width),
		netPremium: width * premiumRate,
	}
	c.maxProfit = c.netPremium
	c.maxLoss = width - c.netPremium
	return c
}

func (c candidate) profitLossAt(spot float64) float64 {
	return condor.ProfitLoss(spot, c.putBuy, c.putSell, c.callSell, c.callBuy, c.netPremium)
}

func roundToStrike(v float64) float64 {
	return math.Round(v/strikeStepSize) * strikeStepSize
}

// Run executes one simulation. It always produces a Result for a valid
// config — a short or empty series yields a zero-trade result, never an
// error. Per-iteration skip conditions (low confidence, position too small,
// insufficient lookahead) are absorbed silently and the walk continues.
func (e *Engine) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bars, err := e.provider.Load(ctx, cfg.Underlying, cfg.Start, cfg.End)
	if err != nil {
		return nil, core.WrapError(core.ErrNoData, err)
	}
	if len(bars) < minBars {
		e.logger.Warn("thin historical series, proceeding with degraded accuracy",
			zap.String("underlying", cfg.Underlying),
			zap.Int("bars", len(bars)),
		)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	params := ParamsFor(cfg.Tier)

	var trades []Trade
	capital := cfg.InitialCapital
	peak := cfg.InitialCapital
	var maxDrawdown float64

	// Walk the series with a 3-5 bar jitter; stop once fewer than
	// exitHorizon bars remain ahead.
	for i := signal.WindowSize; i < len(bars)-exitHorizon; i += rng.Intn(3) + 3 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		analysis := signal.Detect(bars[i-signal.WindowSize : i])
		if analysis.Confidence < params.MinConfidence {
			continue
		}

		entryPrice := bars[i].Close
		pos := newCandidate(entryPrice, params.StrikeWidth)
		if pos.maxLoss <= 0 {
			// Degenerate structure: premium at or above the spread width.
			continue
		}

		riskAmount := capital * (cfg.RiskPerTrade / 100)
		lotSize := math.Floor(riskAmount / pos.maxLoss)
		if lotSize < 1 {
			continue
		}

		// Scan forward day by day for a profit-target or stop-loss exit;
		// fall back to the time exit at the horizon.
		exitIndex := i + exitHorizon
		if exitIndex > len(bars)-1 {
			exitIndex = len(bars) - 1
		}
		exitPrice := bars[exitIndex].Close
		for j := i + 1; j <= exitIndex; j++ {
			pl := pos.profitLossAt(bars[j].Close)
			if pl >= pos.maxProfit*profitTargetFrac || pl <= -pos.maxLoss*stopLossFrac {
				exitIndex = j
				exitPrice = bars[j].Close
				break
			}
		}

		tradePL := pos.profitLossAt(exitPrice) * lotSize
		trades = append(trades, Trade{
			EntryDate:  bars[i].Date,
			ExitDate:   bars[exitIndex].Date,
			EntryPrice: entryPrice,
			ExitPrice:  exitPrice,
			PL:         tradePL,
			PLPercent:  tradePL / riskAmount * 100,
			MaxProfit:  pos.maxProfit * lotSize,
			MaxLoss:    pos.maxLoss * lotSize,
			Signal:     analysis.Direction,
			Confidence: analysis.Confidence,
		})

		capital += tradePL
		if capital > peak {
			peak = capital
		}
		if dd := (peak - capital) / peak * 100; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}

	summary := Aggregate(trades)

	result := &Result{
		ID:            uuid.NewString(),
		Underlying:    cfg.Underlying,
		Tier:          cfg.Tier,
		StartDate:     cfg.Start,
		EndDate:       cfg.End,
		TotalTrades:   summary.TotalTrades,
		WinningTrades: summary.WinningTrades,
		LosingTrades:  summary.LosingTrades,
		TotalPL:       summary.TotalPL,
		MaxDrawdown:   maxDrawdown,
		SharpeRatio:   summary.SharpeRatio,
		WinRate:       summary.WinRate,
		AvgWin:        summary.AvgWin,
		AvgLoss:       summary.AvgLoss,
		CreatedAt:     time.Now().UTC(),
		Trades:        trades,
	}

	e.logger.Info("backtest completed",
		zap.String("underlying", cfg.Underlying),
		zap.String("tier", string(cfg.Tier)),
		zap.Int("trades", result.TotalTrades),
		zap.Float64("win_rate", result.WinRate),
		zap.Float64("total_pl", result.TotalPL),
	)
	return result, nil
}
