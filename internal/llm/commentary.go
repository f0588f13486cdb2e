package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/condorlabs/condor/internal/backtest"
)

const commentarySystemPrompt = `You are a quantitative analyst reviewing an
iron condor backtest. Given the run statistics as JSON, write a short plain
assessment (3-5 sentences): how the strategy performed, what the win rate and
drawdown say about the parameter tier, and one caveat about the simulation.
Do not restate every number.`

// runDigest is the compact view of a run handed to the model. The full trade
// ledger stays out of the prompt.
type runDigest struct {
	Underlying    string  `json:"underlying"`
	Tier          string  `json:"strategyTier"`
	Period        string  `json:"period"`
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	WinRate       float64 `json:"winRatePct"`
	TotalPL       float64 `json:"totalPL"`
	MaxDrawdown   float64 `json:"maxDrawdownPct"`
	SharpeRatio   float64 `json:"sharpeRatio"`
	AvgWin        float64 `json:"avgWin"`
	AvgLoss       float64 `json:"avgLoss"`
}

// Commentary asks the provider for a short analyst note on a finished run.
func Commentary(ctx context.Context, p Provider, result *backtest.Result) (string, error) {
	digest := runDigest{
		Underlying:    result.Underlying,
		Tier:          string(result.Tier),
		Period:        fmt.Sprintf("%s to %s", result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02")),
		TotalTrades:   result.TotalTrades,
		WinningTrades: result.WinningTrades,
		LosingTrades:  result.LosingTrades,
		WinRate:       result.WinRate,
		TotalPL:       result.TotalPL,
		MaxDrawdown:   result.MaxDrawdown,
		SharpeRatio:   result.SharpeRatio,
		AvgWin:        result.AvgWin,
		AvgLoss:       result.AvgLoss,
	}

	payload, err := json.Marshal(digest)
	if err != nil {
		return "", fmt.Errorf("encoding run digest: %w", err)
	}

	resp, err := p.Chat(ctx, ChatRequest{
		SystemPrompt: commentarySystemPrompt,
		Messages: []Message{
			{Role: "user", Content: string(payload)},
		},
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("generating commentary: %w", err)
	}
	return resp.Content, nil
}
