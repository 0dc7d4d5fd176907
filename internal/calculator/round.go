package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds x to the given number of decimal places, half away from zero
// on the shortest decimal representation of x (105.456 -> 105.46).
// NaN and infinities are returned unchanged.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// RoundPtr is Round for optional values: it returns nil for NaN and infinities.
func RoundPtr(x float64, places int32) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	r := Round(x, places)
	return &r
}
