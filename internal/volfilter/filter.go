package volfilter

import (
	"context"
	"fmt"
	"time"

	"github.com/pivotlab/regime-core/internal/config"
	"github.com/pivotlab/regime-core/internal/model"
	"github.com/pivotlab/regime-core/internal/regime"
	"github.com/pivotlab/regime-core/internal/series"
)

// _backfillDays mirrors the classifier's volatility backfill window. Unlike
// the classifier's backfill_days, this window is deliberately not
// configurable: the filter walks the persisted regime table, which may itself
// have gaps, and widening the walk would silently change which rows resolve
// for historical backtests.
const _backfillDays = 5

// Lookup is an immutable snapshot of the regime table, built once per
// backtest run and queried once per simulated trade date. Callers must not
// rebuild it per call.
type Lookup struct {
	byDay map[time.Time]model.RegimeRecord
}

func NewLookup(records []model.RegimeRecord) *Lookup {
	byDay := make(map[time.Time]model.RegimeRecord, len(records))
	for _, rec := range records {
		byDay[series.Day(rec.Ts)] = rec
	}
	return &Lookup{byDay: byDay}
}

func NewLookupFromStore(ctx context.Context, store *regime.Store, from, to time.Time) (*Lookup, error) {
	records, err := store.QueryRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: can't load regime lookup", err)
	}
	return NewLookup(records), nil
}

// Resolve finds the regime entry for the given day, walking backward up to
// five calendar days over table gaps.
func (l *Lookup) Resolve(day time.Time) (model.RegimeRecord, bool) {
	return series.NearestEntry(l.byDay, day, _backfillDays)
}

// Thresholds maps each filter mode to its skip threshold. CustomFallback
// guards against a misconfigured custom threshold silently disabling all
// trades.
type Thresholds struct {
	SkipHigh       float64
	SkipElevated   float64
	CalmOnly       float64
	CustomFallback float64
}

func ThresholdsFromConfig(cfg config.FilterConfig) Thresholds {
	return Thresholds{
		SkipHigh:       cfg.SkipHighThreshold,
		SkipElevated:   cfg.SkipElevatedThreshold,
		CalmOnly:       cfg.CalmOnlyThreshold,
		CustomFallback: cfg.CustomFallback,
	}
}

// Decide reports whether a simulated trade on the given date should be
// skipped under the policy. Absence of regime data never blocks a trade:
// a data gap is not evidence of risk.
func Decide(lookup *Lookup, date time.Time, policy model.FilterPolicy, th Thresholds) model.FilterDecision {
	if policy.Mode == model.FilterOff {
		return model.FilterDecision{
			Skip:   false,
			Label:  model.RegimeUnknown,
			Reason: "filter disabled (mode=off)",
		}
	}

	rec, ok := lookup.Resolve(date)
	if !ok {
		return model.FilterDecision{
			Skip:   false,
			Label:  model.RegimeUnknown,
			Reason: "no data in window",
		}
	}
	if !rec.VolatilityClose.Valid {
		return model.FilterDecision{
			Skip:   false,
			Label:  rec.Label,
			Reason: fmt.Sprintf("volatility unavailable for %s", series.Day(rec.Ts).Format(time.DateOnly)),
		}
	}

	threshold, note := resolveThreshold(policy, th)
	v := rec.VolatilityClose.Float64

	decision := model.FilterDecision{
		Volatility: rec.VolatilityClose,
		Label:      rec.Label,
	}
	if v >= threshold {
		decision.Skip = true
		decision.Reason = fmt.Sprintf("volatility %.2f >= threshold %.2f (mode=%s)%s", v, threshold, policy.Mode, note)
	} else {
		decision.Reason = fmt.Sprintf("volatility %.2f < threshold %.2f (mode=%s)%s", v, threshold, policy.Mode, note)
	}
	return decision
}

func resolveThreshold(policy model.FilterPolicy, th Thresholds) (float64, string) {
	switch policy.Mode {
	case model.FilterSkipHigh:
		return th.SkipHigh, ""
	case model.FilterSkipElevated:
		return th.SkipElevated, ""
	case model.FilterCalmOnly:
		return th.CalmOnly, ""
	case model.FilterCustom:
		if policy.CustomThreshold > 0 {
			return policy.CustomThreshold, ""
		}
		return th.CustomFallback, fmt.Sprintf(" [invalid custom threshold %.2f, fell back to %.2f]",
			policy.CustomThreshold, th.CustomFallback)
	default:
		return th.SkipHigh, fmt.Sprintf(" [unrecognized mode, using skip_high %.2f]", th.SkipHigh)
	}
}
