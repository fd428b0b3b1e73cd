package validation

import (
	"encoding/json"
	"strings"
	"time"
)

// AmountTolerance is the cent threshold under which two monetary values are
// considered equal. Extraction rounds to cents, so anything below a cent is
// representation noise, not a discrepancy.
const AmountTolerance = 0.01

// asAmount coerces an extracted value to a monetary float. It accepts the
// numeric shapes the decoder produces plus dollar-formatted strings; anything
// else, including null, yields nil so callers can abstain.
func asAmount(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case float32:
		f := float64(t)
		return &f
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return nil
		}
		var f float64
		if err := json.Unmarshal([]byte(s), &f); err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// amountOr returns the coerced amount or the fallback when coercion fails.
func amountOr(v any, fallback float64) float64 {
	if f := asAmount(v); f != nil {
		return *f
	}
	return fallback
}

// asString coerces a value to a trimmed string, or "" when it is not one.
func asString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// asList returns the value as a slice of maps, dropping non-map elements.
// Nil and non-list values yield nil.
func asList(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// asMap returns the value as a map, or nil.
func asMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// asDate parses an extracted date value. Malformed or absent dates yield nil;
// checks treat that the same as a missing operand.
func asDate(v any) *time.Time {
	s := asString(v)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.Truncate(24 * time.Hour)
			return &t
		}
	}
	return nil
}

// amountsEqual reports whether two amounts agree within AmountTolerance.
func amountsEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= AmountTolerance
}

// ptr returns a pointer to v; the output DTOs use nil to mean "unknown".
func ptr(v float64) *float64 {
	return &v
}

// round2 rounds to cents so aggregated sums serialize cleanly.
func round2(v float64) float64 {
	if v < 0 {
		return -round2(-v)
	}
	return float64(int64(v*100+0.5)) / 100
}
