package regime

import (
	"database/sql"
	"slices"
	"time"

	"github.com/pivotlab/regime-core/internal/config"
	"github.com/pivotlab/regime-core/internal/logger"
	"github.com/pivotlab/regime-core/internal/model"
	"github.com/pivotlab/regime-core/internal/series"
	"github.com/pivotlab/regime-core/internal/tools"
)

// Classifier labels each trading day with a volatility/trend regime from a
// benchmark price series and a volatility index series. Runs are pure and
// idempotent: the same inputs always reproduce the same records.
type Classifier struct {
	logger logger.Logger

	smaWindow    int
	backfillDays int

	extremeVol  float64
	highVol     float64
	elevatedVol float64
}

func NewClassifier(cfg config.ClassifierConfig, logger logger.Logger) *Classifier {
	return &Classifier{
		logger:       logger,
		smaWindow:    cfg.SMAWindow,
		backfillDays: cfg.BackfillDays,
		extremeVol:   cfg.ExtremeVol,
		highVol:      cfg.HighVol,
		elevatedVol:  cfg.ElevatedVol,
	}
}

// Report carries per-run operational counters. Not required for
// correctness; the orchestrator logs it.
type Report struct {
	BenchmarkDays  int
	VolatilityDays int
	Records        int
	Histogram      map[model.RegimeLabel]int
}

// Run produces one RegimeRecord per calendar day present in either series.
// Missing inputs degrade to NULL fields and an unknown label, never an
// error: a data gap must not fail the classification run.
func (c *Classifier) Run(benchmark, volatility series.Series) ([]model.RegimeRecord, Report) {
	days := unionDays(benchmark.Days(), volatility.Days())

	report := Report{
		BenchmarkDays:  benchmark.Len(),
		VolatilityDays: volatility.Len(),
		Histogram:      make(map[model.RegimeLabel]int),
	}

	records := make([]model.RegimeRecord, 0, len(days))
	for _, day := range days {
		rec := model.RegimeRecord{Ts: day}

		if i, ok := benchmark.IndexOf(day); ok {
			_, close := benchmark.At(i)
			rec.BenchmarkClose = sql.NullFloat64{Float64: tools.Round2(close), Valid: true}
			if sma, ok := benchmark.TrailingSMA(i, c.smaWindow); ok {
				rec.BenchmarkSMA = sql.NullFloat64{Float64: tools.Round2(sma), Valid: true}
			}
		}

		if v, ok := volatility.NearestOnOrBefore(day, c.backfillDays); ok {
			rec.VolatilityClose = sql.NullFloat64{Float64: tools.Round2(v), Valid: true}
		}

		rec.Label = c.classify(rec)
		report.Histogram[rec.Label]++
		records = append(records, rec)
	}
	report.Records = len(records)

	c.logger.Infof("classified %d days (benchmark=%d volatility=%d): %v",
		report.Records, report.BenchmarkDays, report.VolatilityDays, report.Histogram)

	return records, report
}

// classify applies the rule table in fixed order, first match wins.
// Thresholds compare against the already 2dp-rounded volatility value.
func (c *Classifier) classify(rec model.RegimeRecord) model.RegimeLabel {
	if !rec.VolatilityClose.Valid {
		return model.RegimeUnknown
	}
	v := rec.VolatilityClose.Float64

	switch {
	case v >= c.extremeVol:
		return model.RegimeExtremeVol
	case v >= c.highVol:
		return model.RegimeHighVol
	}

	smaSet := rec.BenchmarkSMA.Valid && rec.BenchmarkClose.Valid
	bull := smaSet && rec.BenchmarkClose.Float64 >= rec.BenchmarkSMA.Float64

	if v >= c.elevatedVol {
		switch {
		case !smaSet:
			return model.RegimeModerate
		case bull:
			return model.RegimeModerateBull
		default:
			return model.RegimeModerateBear
		}
	}

	switch {
	case !smaSet:
		return model.RegimeCalm
	case bull:
		return model.RegimeCalmBull
	default:
		return model.RegimeCalmBear
	}
}

func unionDays(a, b []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(a)+len(b))
	days := make([]time.Time, 0, len(a)+len(b))
	for _, d := range a {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}
	for _, d := range b {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}
	slices.SortFunc(days, time.Time.Compare)
	return days
}
