package aggregate

import "math"

// Ratio guards: a zero denominator always yields 0, never NaN/Inf.

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// pct is a percentage ratio rounded to one decimal.
func pct(num, den float64) float64 {
	return round1(safeDiv(num, den) * 100)
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }
func round2(f float64) float64 { return math.Round(f*100) / 100 }
func round0(f float64) float64 { return math.Round(f) }
