// Package normalize converts raw domain readings into canonical units,
// clamped 0-100 scores and classification labels. Every function is pure;
// missing inputs propagate as nil or an "Unknown" label.
package normalize

import "math"

// Unknown labels a classification whose inputs were missing.
const Unknown = "Unknown"

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func ptr(v float64) *float64 { return &v }

// finite returns v when it is a finite number.
func finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}
