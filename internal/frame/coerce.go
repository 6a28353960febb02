package frame

import (
	"strconv"
	"strings"
)

// ToNumber coerces a cell to a float64 following loose JS-style rules:
// nil is 0, booleans are 0/1, strings parse (trimmed), anything else
// fails. The second return reports whether the coercion produced a real
// number.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParseNumber is like ToNumber but treats nil and empty strings as
// unparseable. Aggregations that exclude non-numeric values (avg, min,
// max) use this stricter form.
func ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToString coerces a cell to a string; nil becomes the empty string.
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

// LooseEqual compares a cell against a raw config value with coercive
// equality: when both sides parse as numbers the comparison is numeric,
// otherwise it falls back to string equality. A nil cell is equal to
// nothing, mirroring how null compares loosely in the source language.
func LooseEqual(cell any, want string) bool {
	if cell == nil {
		return false
	}
	cn, cok := ParseNumber(cell)
	wn, wok := ParseNumber(want)
	if cok && wok {
		return cn == wn
	}
	return ToString(cell) == want
}
