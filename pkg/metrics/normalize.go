package metrics

import "math"

// ToDisplayNumber rounds an available value to the given number of decimal
// places. Unavailable stays unavailable; it never manufactures a zero that
// could be mistaken for a real reading.
func ToDisplayNumber(v Value, decimals int) Value {
	f, ok := v.Float64()
	if !ok {
		return None()
	}
	return Some(roundTo(f, decimals))
}

// SafeRatio divides two values, falling back to 0 when the denominator is
// unavailable or zero or the result is non-finite. Unlike ToDisplayNumber this
// returns a plain number, not a Value: ratios feed chart axes that cannot
// render non-numeric ticks, so the fallback here is a drawable zero rather
// than the unavailable sentinel.
func SafeRatio(num, den Value) float64 {
	n, ok := num.Float64()
	if !ok {
		return 0
	}
	d, ok := den.Float64()
	if !ok || d == 0 {
		return 0
	}
	r := n / d
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// ToChartValue converts a Value into a nullable chart point. nil means the
// point is omitted from the series entirely, not drawn at height zero.
func ToChartValue(v Value) *float64 {
	f, ok := v.Float64()
	if !ok {
		return nil
	}
	return &f
}

func roundTo(f float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(f)
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(f*pow) / pow
}
