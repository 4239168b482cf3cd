package tools

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places, half away from zero. Used for both
// cent amounts and the classifier's 2dp normalization so that threshold
// comparisons and stored values always agree.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
