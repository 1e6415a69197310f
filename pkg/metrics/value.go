package metrics

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is a single metric reading that may be unavailable. Engine reports are
// produced by external processes and any field can be missing, null, or the
// wrong type; Value is the one place that uncertainty is resolved. An
// unavailable Value marshals as JSON null and is never confused with a true
// zero reading.
type Value struct {
	num float64
	ok  bool
}

// Some returns an available Value. Non-finite input collapses to None so that
// NaN/Inf can never leak into arithmetic or serialized output.
func Some(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{num: f, ok: true}
}

// None returns the unavailable sentinel.
func None() Value {
	return Value{}
}

// Available reports whether the value holds a finite number.
func (v Value) Available() bool {
	return v.ok
}

// Float64 returns the numeric value and whether it is available.
func (v Value) Float64() (float64, bool) {
	return v.num, v.ok
}

// Or returns the numeric value, or fallback when unavailable.
func (v Value) Or(fallback float64) float64 {
	if !v.ok {
		return fallback
	}
	return v.num
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON is deliberately lenient: numbers and numeric strings become
// available values, everything else (null, booleans, objects, junk strings)
// becomes the unavailable sentinel rather than an error.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*v = None()
		return nil
	}
	*v = Coerce(raw)
	return nil
}

// Coerce converts an arbitrary decoded JSON value into a Value. It is the
// single choke point for "maybe-present, maybe-wrong-type" engine output:
// float64, integer types, json.Number and numeric strings are accepted, all
// other shapes map to None.
func Coerce(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return None()
	case float64:
		return Some(x)
	case float32:
		return Some(float64(x))
	case int:
		return Some(float64(x))
	case int64:
		return Some(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return None()
		}
		return Some(f)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return None()
		}
		return Some(f)
	default:
		return None()
	}
}
