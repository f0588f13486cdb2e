// internal/api/handler/api/results_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/core"
	"github.com/condorlabs/condor/internal/storage/results"
)

func storedResult(id, underlying string, tier core.Tier, createdAt time.Time) *backtest.Result {
	return &backtest.Result{
		ID:          id,
		Underlying:  underlying,
		Tier:        tier,
		StartDate:   time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
		TotalTrades: 3,
		WinRate:     66.6,
		CreatedAt:   createdAt,
		Trades:      make([]backtest.Trade, 3),
	}
}

func populatedResultsHandler(t *testing.T) *ResultsHandler {
	t.Helper()
	store := results.NewMemoryStore(100)
	ctx := context.Background()
	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	store.Save(ctx, storedResult("run-1", "NIFTY", core.TierModerate, base))
	store.Save(ctx, storedResult("run-2", "NIFTY", core.TierAggressive, base.Add(time.Hour)))
	store.Save(ctx, storedResult("run-3", "BANKNIFTY", core.TierModerate, base.Add(2*time.Hour)))
	return NewResultsHandler(store)
}

func TestResultsHandler_List(t *testing.T) {
	handler := populatedResultsHandler(t)

	req := httptest.NewRequest("GET", "/api/results", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)

	if data["total"].(float64) != 3 {
		t.Errorf("total = %v, want 3", data["total"])
	}
	list := data["results"].([]any)
	if len(list) != 3 {
		t.Fatalf("expected 3 results, got %d", len(list))
	}
	first := list[0].(map[string]any)
	if first["id"] != "run-3" {
		t.Errorf("expected newest first, got %v", first["id"])
	}
}

func TestResultsHandler_ListFiltered(t *testing.T) {
	handler := populatedResultsHandler(t)

	req := httptest.NewRequest("GET", "/api/results?underlying=NIFTY&tier=aggressive", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)
	list := data["results"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected 1 result, got %d", len(list))
	}
	if list[0].(map[string]any)["id"] != "run-2" {
		t.Errorf("unexpected result %v", list[0])
	}
}

func TestResultsHandler_ListBadParams(t *testing.T) {
	handler := populatedResultsHandler(t)

	for _, target := range []string{
		"/api/results?tier=RECKLESS",
		"/api/results?limit=zero",
		"/api/results?offset=-1",
	} {
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()
		handler.List(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
	}
}

func TestResultsHandler_Get(t *testing.T) {
	handler := populatedResultsHandler(t)

	req := httptest.NewRequest("GET", "/api/results/run-1", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req, "run-1")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)
	if data["id"] != "run-1" {
		t.Errorf("id = %v", data["id"])
	}
	if data["trades"] == nil {
		t.Error("expected full trade ledger in single-result response")
	}
}

func TestResultsHandler_Get_NotFound(t *testing.T) {
	handler := populatedResultsHandler(t)

	req := httptest.NewRequest("GET", "/api/results/ghost", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req, "ghost")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
