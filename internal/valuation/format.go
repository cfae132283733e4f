package valuation

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Missing is rendered wherever a value could not be measured.
const Missing = "—"

// FormatCurrency renders a USD amount for display:
//
//	v >= 1e9 -> "$X.XXB"
//	v >= 1e6 -> "$X.XXM"
//	v >= 1e3 -> "$XK"
//	else     -> "$X"
//
// Rounding follows JavaScript's Number.prototype.toFixed on the exact binary
// value, so 999999 renders as "$1000K" and 2.5 as "$3".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	switch {
	case v >= 1e9:
		return "$" + toFixed(v/1e9, 2) + "B"
	case v >= 1e6:
		return "$" + toFixed(v/1e6, 2) + "M"
	case v >= 1e3:
		return "$" + toFixed(v/1e3, 0) + "K"
	default:
		return "$" + toFixed(v, 0)
	}
}

// FormatCurrencyCompact is the axis/label variant: one decimal, no "$".
func FormatCurrencyCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	switch {
	case v >= 1e9:
		return toFixed(v/1e9, 1) + "B"
	case v >= 1e6:
		return toFixed(v/1e6, 1) + "M"
	case v >= 1e3:
		return toFixed(v/1e3, 0) + "K"
	default:
		return toFixed(v, 0)
	}
}

// FormatCurrencyPtr formats an optional amount, nil rendering as Missing.
func FormatCurrencyPtr(v *float64) string {
	if v == nil {
		return Missing
	}
	return FormatCurrency(*v)
}

// toFixed rounds half away from zero on the exact decimal expansion of v.
// 1100 fractional digits cover every float64, subnormals included.
func toFixed(v float64, places int32) string {
	exact := new(big.Float).SetFloat64(v).Text('f', 1100)
	return decimal.RequireFromString(exact).StringFixed(places)
}

// Round mirrors JavaScript Math.round: nearest integer, ties toward +Inf.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}

// nonNegative clamps physical inputs before pricing; NaN and Inf count as missing.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clampPercent(v float64) float64 {
	v = nonNegative(v)
	if v > 100 {
		return 100
	}
	return v
}
