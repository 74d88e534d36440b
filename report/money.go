package report

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money formats x with two decimals. Rounding works on the exact binary
// value, so 1.005 (stored as 1.00499...) shows as "1.00".
func Money(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return decimal.NewFromFloatWithExponent(x, -2).StringFixed(2)
}

// Pct formats a percentage with two decimals and a trailing "%".
func Pct(x float64) string {
	return Money(x) + "%"
}
