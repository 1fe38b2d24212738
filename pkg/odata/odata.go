// Package odata validates and sanitizes untyped tool arguments before they
// reach a Graph query. All functions are pure: they coerce JSON-decoded
// values into safe, bounded Go values or fail with a classified
// invalid-parameter error. Nothing here performs I/O.
package odata

import (
	"fmt"
	"math"
	"strings"
	"time"

	"dirgate-hq/dirgate/pkg/graph"
)

// Bounds for numeric parameters.
const (
	// MaxTop is the largest accepted page size.
	MaxTop = 999

	// MaxDays is the largest accepted day window.
	MaxDays = 365
)

// systemQueryTokens is the denylist of system-level query operators that must
// never appear inside a user-supplied $filter. Matching is a case-insensitive
// substring check: deliberately conservative, so a legitimate filter that
// merely embeds one of these tokens in a longer identifier is also rejected.
var systemQueryTokens = []string{"$count", "$search", "$format", "$compute", "$apply"}

// QueryOptions carries the validated query modifiers for a collection query.
type QueryOptions struct {
	// Top is the resolved page size (always concrete after validation)
	Top int

	// Filter is a sanitized $filter expression ("" if unset)
	Filter string

	// Select is the ordered field projection (nil if unset)
	Select []string

	// OrderBy is a field plus optional direction ("" if unset)
	OrderBy string
}

// RequiredString validates that value is a non-empty string. The returned
// string is the original value, unmodified: trimming applies only to the
// emptiness check.
func RequiredString(value any, field string) (string, error) {
	if value == nil {
		return "", graph.Errorf(graph.KindMissingParameter, "parameter %q is required", field)
	}
	s, ok := value.(string)
	if !ok {
		return "", graph.Errorf(graph.KindInvalidParameter, "parameter %q must be a string", field)
	}
	if strings.TrimSpace(s) == "" {
		return "", graph.Errorf(graph.KindInvalidParameter, "parameter %q must not be empty", field)
	}
	return s, nil
}

// OptionalString validates value as a string when present; absent input
// returns "".
func OptionalString(value any, field string) (string, error) {
	if value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", graph.Errorf(graph.KindInvalidParameter, "parameter %q must be a string", field)
	}
	return s, nil
}

// Top validates a page-size parameter. Absent input resolves to def; a
// present value must be an integer in [1, MaxTop].
func Top(value any, def int) (int, error) {
	return boundedInt(value, "top", def, MaxTop)
}

// Days validates a day-window parameter. Absent input resolves to def; a
// present value must be an integer in [1, MaxDays].
func Days(value any, def int) (int, error) {
	return boundedInt(value, "days", def, MaxDays)
}

func boundedInt(value any, field string, def, max int) (int, error) {
	if value == nil {
		return def, nil
	}

	var n int
	switch v := value.(type) {
	case int:
		n = v
	case float64:
		// JSON numbers decode as float64; non-integral values are rejected
		if v != math.Trunc(v) {
			return 0, graph.Errorf(graph.KindInvalidParameter, "parameter %q must be an integer", field)
		}
		n = int(v)
	default:
		return 0, graph.Errorf(graph.KindInvalidParameter, "parameter %q must be an integer", field)
	}

	if n < 1 || n > max {
		return 0, graph.Errorf(graph.KindInvalidParameter,
			"parameter %q must be between 1 and %d, got %d", field, max, n)
	}
	return n, nil
}

// StringSlice validates an optional list of strings. Absent input and an
// empty list both collapse to nil ("select nothing specific"); a non-list
// value or non-string element fails.
func StringSlice(value any, field string) ([]string, error) {
	if value == nil {
		return nil, nil
	}

	switch v := value.(type) {
	case []string:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, graph.Errorf(graph.KindInvalidParameter,
					"parameter %q element %d must be a string", field, i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, graph.Errorf(graph.KindInvalidParameter,
			"parameter %q must be an array of strings", field)
	}
}

// Filter validates a user-supplied $filter expression. Absent or blank input
// returns ""; otherwise the expression must not contain any denylisted
// system-query token. Valid filters are returned unchanged.
func Filter(value any) (string, error) {
	if value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", graph.Errorf(graph.KindInvalidParameter, "parameter %q must be a string", "filter")
	}
	if strings.TrimSpace(s) == "" {
		return "", nil
	}

	lowered := strings.ToLower(s)
	for _, token := range systemQueryTokens {
		if strings.Contains(lowered, token) {
			return "", graph.Errorf(graph.KindInvalidParameter,
				"filter must not contain the system query option %q", token)
		}
	}
	return s, nil
}

// EscapeString doubles every single-quote character so user-supplied text can
// be interpolated into a string-literal position inside a filter expression
// without breaking out of it.
func EscapeString(input string) string {
	return strings.ReplaceAll(input, "'", "''")
}

// FormatTime renders a timestamp as a double-quoted ISO-8601 string suitable
// for direct interpolation into a filter comparison.
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%q", t.UTC().Format(time.RFC3339))
}

// DateOffset returns the timestamp "now minus days days", the anchor for
// all inactivity and time-window queries.
func DateOffset(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}
