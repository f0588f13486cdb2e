package core

import (
	"testing"
	"time"
)

func TestBar_IsValid(t *testing.T) {
	b := Bar{
		Date:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Open:   18200.50,
		High:   18310.25,
		Low:    18150.00,
		Close:  18275.75,
		Volume: 650000,
	}

	if !b.IsValid() {
		t.Error("expected valid bar")
	}

	invalid := Bar{Open: 0, Close: 18000}
	if invalid.IsValid() {
		t.Error("expected invalid bar")
	}

	negVolume := b
	negVolume.Volume = -1
	if negVolume.IsValid() {
		t.Error("expected invalid bar with negative volume")
	}
}

func TestDirection_Constants(t *testing.T) {
	dirs := []Direction{Bullish, Bearish, Neutral}
	expected := []string{"BULLISH", "BEARISH", "NEUTRAL"}

	for i, d := range dirs {
		if string(d) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], d)
		}
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"CONSERVATIVE", TierConservative, false},
		{"moderate", TierModerate, false},
		{"  Aggressive ", TierAggressive, false},
		{"YOLO", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTier(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTier(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
