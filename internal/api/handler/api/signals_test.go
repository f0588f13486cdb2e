// internal/api/handler/api/signals_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/core"
	"github.com/condorlabs/condor/internal/history"
)

func TestSignalsHandler_Analyze_Breakout(t *testing.T) {
	p := history.NewMemoryProvider()
	now := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)

	// Final close punches above the third bar's high.
	bars := []core.Bar{
		{Date: now.AddDate(0, 0, -4), Open: 18000, High: 18050, Low: 17950, Close: 18000, Volume: 500000},
		{Date: now.AddDate(0, 0, -3), Open: 18000, High: 18060, Low: 17960, Close: 18020, Volume: 500000},
		{Date: now.AddDate(0, 0, -2), Open: 18020, High: 18080, Low: 17980, Close: 18040, Volume: 500000},
		{Date: now.AddDate(0, 0, -1), Open: 18040, High: 18400, Low: 18030, Close: 18380, Volume: 500000},
	}
	p.SaveBars(context.Background(), "NIFTY", bars)

	handler := NewSignalsHandler(p, nil)
	handler.now = func() time.Time { return now }

	req := httptest.NewRequest("GET", "/api/signals/NIFTY", nil)
	w := httptest.NewRecorder()

	handler.Analyze(w, req, "NIFTY")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)

	if data["direction"] != "BULLISH" {
		t.Errorf("direction = %v, want BULLISH", data["direction"])
	}
	if data["breakout"] != true {
		t.Error("expected a breakout reading")
	}
	if data["upperWickLimit"].(float64) != 18080 {
		t.Errorf("upperWickLimit = %v, want 18080", data["upperWickLimit"])
	}
	if data["confidence"].(float64) < 70 {
		t.Errorf("confidence = %v, want >= 70 on breakout", data["confidence"])
	}
}

func TestSignalsHandler_Analyze_ShortSeriesDegrades(t *testing.T) {
	p := history.NewMemoryProvider()
	now := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	p.SaveBars(context.Background(), "NIFTY", []core.Bar{
		{Date: now.AddDate(0, 0, -1), Open: 18000, High: 18050, Low: 17950, Close: 18000, Volume: 500000},
	})

	handler := NewSignalsHandler(p, nil)
	handler.now = func() time.Time { return now }

	req := httptest.NewRequest("GET", "/api/signals/NIFTY", nil)
	w := httptest.NewRecorder()

	handler.Analyze(w, req, "NIFTY")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with degraded reading, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)

	if data["direction"] != "NEUTRAL" {
		t.Errorf("direction = %v, want NEUTRAL", data["direction"])
	}
	if data["strength"].(float64) != 0 || data["confidence"].(float64) != 50 {
		t.Errorf("strength/confidence = %v/%v, want 0/50", data["strength"], data["confidence"])
	}
}

func TestSignalsHandler_Analyze_EmptySeries(t *testing.T) {
	handler := NewSignalsHandler(history.NewMemoryProvider(), nil)

	req := httptest.NewRequest("GET", "/api/signals/GHOST", nil)
	w := httptest.NewRecorder()

	handler.Analyze(w, req, "GHOST")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)
	if data["direction"] != "NEUTRAL" {
		t.Errorf("direction = %v, want NEUTRAL for empty series", data["direction"])
	}
}
