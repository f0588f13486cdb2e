package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/core"
)

type fakeProvider struct {
	lastReq ChatRequest
	reply   string
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &ChatResponse{Content: f.reply}, nil
}

func commentaryResult() *backtest.Result {
	return &backtest.Result{
		ID:          "run-1",
		Underlying:  "NIFTY",
		Tier:        core.TierModerate,
		StartDate:   time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
		TotalTrades: 14,
		WinRate:     64.2,
		TotalPL:     31250,
		MaxDrawdown: 4.8,
		SharpeRatio: 1.1,
		Trades:      make([]backtest.Trade, 14),
	}
}

func TestCommentary(t *testing.T) {
	provider := &fakeProvider{reply: "Solid premium-selling year."}

	note, err := Commentary(context.Background(), provider, commentaryResult())
	if err != nil {
		t.Fatalf("Commentary failed: %v", err)
	}
	if note != "Solid premium-selling year." {
		t.Errorf("note = %q", note)
	}

	if provider.lastReq.SystemPrompt == "" {
		t.Error("expected a system prompt")
	}
	if len(provider.lastReq.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(provider.lastReq.Messages))
	}

	// The digest must carry the headline stats but never the trade ledger.
	var digest map[string]any
	if err := json.Unmarshal([]byte(provider.lastReq.Messages[0].Content), &digest); err != nil {
		t.Fatalf("digest is not JSON: %v", err)
	}
	if digest["underlying"] != "NIFTY" || digest["totalTrades"].(float64) != 14 {
		t.Errorf("digest = %v", digest)
	}
	if strings.Contains(provider.lastReq.Messages[0].Content, "trades\":[") {
		t.Error("trade ledger leaked into the prompt")
	}
}

func TestCommentary_ProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}

	if _, err := Commentary(context.Background(), provider, commentaryResult()); err == nil {
		t.Error("expected provider error to propagate")
	}
}
