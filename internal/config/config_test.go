package config

import (
	"testing"
	"time"

	"github.com/pivotlab/regime-core/internal/model"
)

func TestClassifierConfig_SetupDefaults(t *testing.T) {
	cfg := ClassifierConfig{}
	if err := cfg.Setup(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cfg.BenchmarkSymbol != "SPY" || cfg.VolatilitySymbol != "VIX" {
		t.Errorf("unexpected symbols: %s %s", cfg.BenchmarkSymbol, cfg.VolatilitySymbol)
	}
	if cfg.SMAWindow != 200 || cfg.BackfillDays != 5 {
		t.Errorf("unexpected windows: sma=%d backfill=%d", cfg.SMAWindow, cfg.BackfillDays)
	}
	if cfg.ExtremeVol != 35 || cfg.HighVol != 25 || cfg.ElevatedVol != 20 {
		t.Errorf("unexpected thresholds: %.2f %.2f %.2f", cfg.ExtremeVol, cfg.HighVol, cfg.ElevatedVol)
	}
}

func TestClassifierConfig_SetupRejectsInvertedInterval(t *testing.T) {
	cfg := ClassifierConfig{
		From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := cfg.Setup(); err == nil {
		t.Error("expected error for from after to")
	}
}

func TestFilterConfig_SetupDefaults(t *testing.T) {
	cfg := FilterConfig{}
	cfg.Setup()

	if cfg.Policy.Mode != model.FilterOff {
		t.Errorf("expected default mode off, got %s", cfg.Policy.Mode)
	}
	if cfg.SkipHighThreshold != 25 || cfg.SkipElevatedThreshold != 20 ||
		cfg.CalmOnlyThreshold != 16 || cfg.CustomFallback != 25 {
		t.Errorf("unexpected thresholds: %+v", cfg)
	}
}

func TestFilterConfig_SetupKeepsExplicitValues(t *testing.T) {
	cfg := FilterConfig{
		Policy:            model.FilterPolicy{Mode: model.FilterCalmOnly},
		SkipHighThreshold: 30,
	}
	cfg.Setup()

	if cfg.Policy.Mode != model.FilterCalmOnly || cfg.SkipHighThreshold != 30 {
		t.Errorf("setup overwrote explicit values: %+v", cfg)
	}
}

func TestFeeScheduleConfig_SetupDefaults(t *testing.T) {
	cfg := FeeScheduleConfig{}
	cfg.Setup()

	if cfg.FlatCommission != 4.95 || cfg.FXMarkupRate != 0.0175 ||
		cfg.ExchangePerShare != 0.005 || cfg.RegulatoryRate != 0.0000278 {
		t.Errorf("unexpected rates: %+v", cfg)
	}
	if len(cfg.ReceiptEligible) == 0 {
		t.Error("expected built-in receipt allow-list")
	}
	if len(cfg.DomesticSuffixes) != 1 || cfg.DomesticSuffixes[0] != ".SA" {
		t.Errorf("unexpected domestic suffixes: %v", cfg.DomesticSuffixes)
	}
}

func TestFeeScheduleConfig_SetupKeepsExplicitlyEmptyLists(t *testing.T) {
	cfg := FeeScheduleConfig{
		ReceiptEligible:  []string{},
		DomesticSuffixes: []string{},
	}
	cfg.Setup()

	if len(cfg.ReceiptEligible) != 0 {
		t.Errorf("explicitly empty allow-list was replaced with defaults: %v", cfg.ReceiptEligible)
	}
	if len(cfg.DomesticSuffixes) != 0 {
		t.Errorf("explicitly empty suffix list was replaced with defaults: %v", cfg.DomesticSuffixes)
	}
}

func TestFeedConfig_SetupRequiresAddress(t *testing.T) {
	cfg := FeedConfig{}
	if err := cfg.Setup(); err == nil {
		t.Error("expected error for empty address")
	}

	cfg.Address = "http://localhost:8000"
	if err := cfg.Setup(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg.RequestsPerMinute != 300 {
		t.Errorf("expected default 300 rpm, got %d", cfg.RequestsPerMinute)
	}
}
