package model

import "time"

// PriceSample is one daily close of a price series. Samples are immutable
// once ingested and deduplicated by calendar day.
type PriceSample struct {
	Ts         time.Time `db:"ts"`
	ClosePrice float64   `db:"close_price"`
}

// VolatilitySample is one daily close of a volatility benchmark index.
type VolatilitySample struct {
	Ts         time.Time `db:"ts"`
	IndexClose float64   `db:"index_close"`
}
