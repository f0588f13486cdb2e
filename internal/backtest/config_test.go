package backtest

import (
	"testing"
	"time"

	"github.com/condorlabs/condor/internal/core"
)

func validConfig() Config {
	return Config{
		Underlying:     "NIFTY",
		Start:          time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
		Tier:           core.TierModerate,
		InitialCapital: 500000,
		RiskPerTrade:   5,
		Seed:           1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing underlying", func(c *Config) { c.Underlying = "" }, true},
		{"bad tier", func(c *Config) { c.Tier = "RECKLESS" }, true},
		{"end before start", func(c *Config) { c.End = c.Start.AddDate(0, 0, -1) }, true},
		{"same day range", func(c *Config) { c.End = c.Start }, false},
		{"zero capital", func(c *Config) { c.InitialCapital = 0 }, true},
		{"negative capital", func(c *Config) { c.InitialCapital = -100 }, true},
		{"zero risk", func(c *Config) { c.RiskPerTrade = 0 }, true},
		{"risk over 100", func(c *Config) { c.RiskPerTrade = 101 }, true},
		{"full risk allowed", func(c *Config) { c.RiskPerTrade = 100 }, false},
		{"missing dates", func(c *Config) { c.Start, c.End = time.Time{}, time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParamsFor(t *testing.T) {
	tests := []struct {
		tier  core.Tier
		want  TierParams
	}{
		{core.TierConservative, TierParams{RiskReward: 0.3, MinConfidence: 75, StrikeWidth: 400}},
		{core.TierModerate, TierParams{RiskReward: 0.5, MinConfidence: 65, StrikeWidth: 300}},
		{core.TierAggressive, TierParams{RiskReward: 0.8, MinConfidence: 55, StrikeWidth: 200}},
	}

	for _, tt := range tests {
		if got := ParamsFor(tt.tier); got != tt.want {
			t.Errorf("ParamsFor(%s) = %+v, want %+v", tt.tier, got, tt.want)
		}
	}
}

func TestParamsFor_UnknownFallsBackToModerate(t *testing.T) {
	if got := ParamsFor("???"); got != tierParams[core.TierModerate] {
		t.Errorf("unknown tier should fall back to moderate, got %+v", got)
	}
}
