package config

import "github.com/pivotlab/regime-core/internal/model"

// FilterConfig carries the volatility filter policy plus its threshold
// table. Thresholds are policy, not mechanism; the filter's control flow is
// independent of their exact values.
type FilterConfig struct {
	Policy model.FilterPolicy `yaml:"policy"`

	SkipHighThreshold     float64 `yaml:"skip_high_threshold"`
	SkipElevatedThreshold float64 `yaml:"skip_elevated_threshold"`
	CalmOnlyThreshold     float64 `yaml:"calm_only_threshold"`
	CustomFallback        float64 `yaml:"custom_fallback"`
}

const (
	_skipHighDefault       = 25
	_skipElevatedDefault   = 20
	_calmOnlyDefault       = 16
	_customFallbackDefault = 25
)

func (c *FilterConfig) Setup() {
	if c.Policy.Mode == "" {
		c.Policy.Mode = model.FilterOff
	}
	if c.SkipHighThreshold <= 0 {
		c.SkipHighThreshold = _skipHighDefault
	}
	if c.SkipElevatedThreshold <= 0 {
		c.SkipElevatedThreshold = _skipElevatedDefault
	}
	if c.CalmOnlyThreshold <= 0 {
		c.CalmOnlyThreshold = _calmOnlyDefault
	}
	if c.CustomFallback <= 0 {
		c.CustomFallback = _customFallbackDefault
	}
}
