package pricing

import "math"

// RoundCurrency rounds an amount to two decimal places. Tier accumulation is
// done on unrounded values; rounding happens once at the computation
// boundary so error does not compound across segments.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
