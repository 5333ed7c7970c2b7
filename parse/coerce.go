// Package parse holds the tolerant payload-normalization helpers used by the
// club upsert pipeline: numeric coercion, location splitting and schedule
// parsing. Nothing in here returns an error – malformed input degrades to
// nil so a bad sub-field never rejects a whole request.
package parse

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Float coerces an arbitrary JSON value to a float. Strings are trimmed and
// a comma decimal separator is accepted. Empty strings and the literal
// tokens "null"/"undefined" count as absent. Anything unparseable is nil.
func Float(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		f := t
		return &f
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
		return Float(string(t))
	case string:
		s := normalizeNumeric(t)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// Int coerces an arbitrary JSON value to an int. JSON numbers arrive as
// float64 and are truncated; strings must be plain integers.
func Int(v any) *int {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		n := int(t)
		return &n
	case float32:
		n := int(t)
		return &n
	case int:
		n := t
		return &n
	case int64:
		n := int(t)
		return &n
	case json.Number:
		return Int(string(t))
	case string:
		s := normalizeNumeric(t)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func normalizeNumeric(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || s == "undefined" {
		return ""
	}
	return strings.ReplaceAll(s, ",", ".")
}
