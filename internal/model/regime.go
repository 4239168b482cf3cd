package model

import (
	"database/sql"
	"time"
)

// RegimeLabel is the discrete volatility/trend state of one trading day.
type RegimeLabel string

const (
	RegimeUnknown      RegimeLabel = "unknown"
	RegimeExtremeVol   RegimeLabel = "extreme_vol"
	RegimeHighVol      RegimeLabel = "high_vol"
	RegimeModerateBull RegimeLabel = "moderate_bull"
	RegimeModerateBear RegimeLabel = "moderate_bear"
	RegimeModerate     RegimeLabel = "moderate"
	RegimeCalmBull     RegimeLabel = "calm_bull"
	RegimeCalmBear     RegimeLabel = "calm_bear"
	RegimeCalm         RegimeLabel = "calm"
)

// RegimeRecord is one classified trading day, keyed by date. Numeric fields
// stay NULL when the corresponding input series had no usable data.
type RegimeRecord struct {
	Ts              time.Time       `db:"ts"`
	BenchmarkClose  sql.NullFloat64 `db:"benchmark_close"`
	BenchmarkSMA    sql.NullFloat64 `db:"benchmark_sma"`
	VolatilityClose sql.NullFloat64 `db:"volatility_close"`
	Label           RegimeLabel     `db:"label"`
}
