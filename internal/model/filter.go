package model

import "database/sql"

type FilterMode string

const (
	FilterOff          FilterMode = "off"
	FilterSkipHigh     FilterMode = "skip_high"
	FilterSkipElevated FilterMode = "skip_elevated"
	FilterCalmOnly     FilterMode = "calm_only"
	FilterCustom       FilterMode = "custom"
)

// FilterPolicy is configuration, not persisted state. CustomThreshold is
// consulted only when Mode is FilterCustom.
type FilterPolicy struct {
	Mode            FilterMode `yaml:"mode"`
	CustomThreshold float64    `yaml:"custom_threshold"`
}

// FilterDecision is computed fresh per queried trade date.
type FilterDecision struct {
	Skip       bool
	Volatility sql.NullFloat64
	Label      RegimeLabel
	Reason     string
}
