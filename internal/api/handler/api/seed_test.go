// internal/api/handler/api/seed_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/condorlabs/condor/internal/api/response"
	"github.com/condorlabs/condor/internal/history"
)

func TestSeedHandler_Defaults(t *testing.T) {
	provider := history.NewMemoryProvider()
	handler := NewSeedHandler(provider, nil)

	req := httptest.NewRequest("POST", "/api/seed", nil)
	w := httptest.NewRecorder()

	handler.Seed(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)

	if data["barsSeeded"].(float64) < 1400 {
		t.Errorf("barsSeeded = %v, want three years for two underlyings", data["barsSeeded"])
	}

	underlyings := data["underlyings"].(map[string]any)
	for _, name := range []string{"NIFTY", "BANKNIFTY"} {
		if underlyings[name] == nil {
			t.Errorf("expected %s to be seeded", name)
		}
	}

	bars, err := provider.Load(context.Background(), "NIFTY",
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) < 700 {
		t.Errorf("expected stored NIFTY series, got %d bars", len(bars))
	}
}

func TestSeedHandler_SingleUnderlying(t *testing.T) {
	provider := history.NewMemoryProvider()
	handler := NewSeedHandler(provider, nil)

	body := bytes.NewBufferString(`{
		"underlying": "FINNIFTY",
		"startDate": "2023-01-01",
		"endDate": "2023-03-31",
		"startPrice": 20000,
		"seed": 7
	}`)
	req := httptest.NewRequest("POST", "/api/seed", body)
	w := httptest.NewRecorder()

	handler.Seed(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	bars, err := provider.Load(context.Background(), "FINNIFTY",
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) == 0 {
		t.Fatal("expected seeded bars for FINNIFTY")
	}
	if bars[0].Open != 20000 {
		t.Errorf("first open = %f, want the requested start price", bars[0].Open)
	}
}

func TestSeedHandler_BadRange(t *testing.T) {
	handler := NewSeedHandler(history.NewMemoryProvider(), nil)

	body := bytes.NewBufferString(`{
		"underlying": "NIFTY",
		"startDate": "2023-06-01",
		"endDate": "2023-01-01"
	}`)
	req := httptest.NewRequest("POST", "/api/seed", body)
	w := httptest.NewRecorder()

	handler.Seed(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
