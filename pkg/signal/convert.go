// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"math"
	"time"
)

// toFloat returns the floating point representation of a signal value.
// Absent values and values without a numeric representation give NaN.
func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case int:
		return float64(v)
	case bool:
		if v {
			return 1.0
		}
		return 0.0
	case time.Time:
		return float64(v.UnixMilli())
	}
	return math.NaN()
}

// fromFloat converts a floating point representation back to the
// canonical Go type of the given value type. NaN gives nil (absent).
func fromFloat(value float64, vt ValueType) any {
	if math.IsNaN(value) {
		return nil
	}
	switch vt {
	case Float:
		return value
	case Integer:
		return int64(math.Round(value))
	case Boolean:
		return value != 0.0
	case DateTime:
		return time.UnixMilli(int64(value)).UTC()
	}
	return nil
}

// coerce converts a caller supplied value to the canonical Go type of
// the given value type: float64, int64, string, bool or time.Time.
// Nil stays nil, meaning absent. Values without a sensible conversion
// become absent rather than failing.
func coerce(value any, vt ValueType) any {
	if value == nil {
		return nil
	}

	switch vt {
	case Float:
		f := toFloat(value)
		if math.IsNaN(f) {
			return nil
		}
		return f

	case Integer:
		switch v := value.(type) {
		case int64:
			return v
		case int:
			return int64(v)
		case int32:
			return int64(v)
		case float64:
			return int64(math.Round(v))
		case float32:
			return int64(math.Round(float64(v)))
		}
		return nil

	case String:
		if v, ok := value.(string); ok {
			return v
		}
		return nil

	case Boolean:
		switch v := value.(type) {
		case bool:
			return v
		case float64:
			return v != 0.0
		case int64:
			return v != 0
		case int:
			return v != 0
		}
		return nil

	case DateTime:
		switch v := value.(type) {
		case time.Time:
			return v
		case string:
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t
			}
		}
		return nil
	}

	// Unrecognized value types store the value as given.
	return value
}
