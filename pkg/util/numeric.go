package util

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseNumeric converts an upstream numeric-like value to a float64.
// Numbers pass through, strings accept either comma or dot as the decimal
// separator, everything else (nil, unparseable) yields 0. Never fails.
func ParseNumeric(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		return parseNumericString(n.String())
	case string:
		return parseNumericString(n)
	default:
		return 0
	}
}

// ParseNumericOptional is ParseNumeric for explicitly optional fields:
// absent, nil, or empty values map to nil instead of 0.
func ParseNumericOptional(v interface{}) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case string:
		if n == "" {
			return nil
		}
	}
	f := ParseNumeric(v)
	return &f
}

func parseNumericString(s string) float64 {
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
