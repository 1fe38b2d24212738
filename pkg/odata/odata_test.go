package odata

import (
	"errors"
	"strings"
	"testing"
	"time"

	"dirgate-hq/dirgate/pkg/graph"
)

func assertKind(t *testing.T, err error, kind graph.Kind) {
	t.Helper()
	var classified *graph.Error
	if !errors.As(err, &classified) {
		t.Fatalf("expected *graph.Error, got %T: %v", err, err)
	}
	if classified.Kind != kind {
		t.Errorf("expected kind %s, got %s", kind, classified.Kind)
	}
}

func TestTop(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		def     int
		want    int
		wantErr bool
	}{
		{name: "absent uses default", value: nil, def: 50, want: 50},
		{name: "lower bound", value: 1, def: 50, want: 1},
		{name: "upper bound", value: 999, def: 50, want: 999},
		{name: "json number", value: float64(25), def: 50, want: 25},
		{name: "zero rejected", value: 0, def: 50, wantErr: true},
		{name: "negative rejected", value: -5, def: 50, wantErr: true},
		{name: "over max rejected", value: 1000, def: 50, wantErr: true},
		{name: "fractional rejected", value: 2.5, def: 50, wantErr: true},
		{name: "string rejected", value: "10", def: 50, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Top(tt.value, tt.def)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v, got %d", tt.value, got)
				}
				assertKind(t, err, graph.KindInvalidParameter)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTop_Idempotent(t *testing.T) {
	// Re-validating a valid output returns the same value.
	first, err := Top(42, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Top(first, 50)
	if err != nil {
		t.Fatalf("unexpected error on revalidation: %v", err)
	}
	if second != first {
		t.Errorf("expected %d, got %d", first, second)
	}
}

func TestDays(t *testing.T) {
	if _, err := Days(366, 30); err == nil {
		t.Error("expected error for days over 365")
	}
	got, err := Days(nil, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 30 {
		t.Errorf("expected default 30, got %d", got)
	}
	got, err = Days(90, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 90 {
		t.Errorf("expected 90, got %d", got)
	}
}

func TestRequiredString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantKind graph.Kind
	}{
		{name: "absent", value: nil, wantKind: graph.KindMissingParameter},
		{name: "non-string", value: 7, wantKind: graph.KindInvalidParameter},
		{name: "blank", value: "   ", wantKind: graph.KindInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RequiredString(tt.value, "userId")
			if err == nil {
				t.Fatal("expected error")
			}
			assertKind(t, err, tt.wantKind)
		})
	}

	// The original string is returned unmodified, including whitespace.
	got, err := RequiredString("  Alice  ", "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "  Alice  " {
		t.Errorf("expected original string preserved, got %q", got)
	}
}

func TestOptionalString(t *testing.T) {
	got, err := OptionalString(nil, "orderBy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string for absent value, got %q", got)
	}

	if _, err := OptionalString(3.14, "orderBy"); err == nil {
		t.Error("expected error for non-string value")
	}
}

func TestStringSlice(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    []string
		wantErr bool
	}{
		{name: "absent", value: nil, want: nil},
		{name: "empty collapses to unset", value: []any{}, want: nil},
		{name: "strings", value: []any{"id", "displayName"}, want: []string{"id", "displayName"}},
		{name: "non-array", value: "id", wantErr: true},
		{name: "non-string element", value: []any{"id", 5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringSlice(tt.value, "select")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				assertKind(t, err, graph.KindInvalidParameter)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("element %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestFilter_Denylist(t *testing.T) {
	tests := []struct {
		name   string
		filter string
	}{
		{name: "count", filter: "accountEnabled eq true&$count=true"},
		{name: "search", filter: "$search=\"displayName:Al\""},
		{name: "format", filter: "x eq 1 and $format=json"},
		{name: "compute", filter: "$compute=price mul qty"},
		{name: "apply", filter: "$apply=groupby((dept))"},
		{name: "mixed case", filter: "displayName eq 'x' and $SEARCH"},
		{name: "embedded in identifier", filter: "field$countish eq 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Filter(tt.filter)
			if err == nil {
				t.Fatalf("expected error for filter %q", tt.filter)
			}
			assertKind(t, err, graph.KindInvalidParameter)
		})
	}
}

func TestFilter_Valid(t *testing.T) {
	valid := []any{
		nil,
		"",
		"   ",
		"accountEnabled eq true",
		"startswith(displayName,'Al') or startswith(mail,'Al')",
	}
	for _, value := range valid {
		got, err := Filter(value)
		if err != nil {
			t.Errorf("unexpected error for %v: %v", value, err)
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) != "" && got != s {
			t.Errorf("expected filter returned unchanged, got %q", got)
		}
	}
}

func TestEscapeString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Alice", want: "Alice"},
		{input: "O'Brien", want: "O''Brien"},
		{input: "''", want: "''''"},
		{input: "", want: ""},
	}
	for _, tt := range tests {
		got := EscapeString(tt.input)
		if got != tt.want {
			t.Errorf("EscapeString(%q) = %q, want %q", tt.input, got, tt.want)
		}
		// n single quotes in, 2n out
		if strings.Count(got, "'") != 2*strings.Count(tt.input, "'") {
			t.Errorf("EscapeString(%q) did not double quote count", tt.input)
		}
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	got := FormatTime(ts)
	if got != `"2025-06-01T12:30:00Z"` {
		t.Errorf("unexpected format: %s", got)
	}
}

func TestDateOffset(t *testing.T) {
	anchor := DateOffset(90)
	expected := time.Now().UTC().AddDate(0, 0, -90)
	if diff := expected.Sub(anchor); diff < -time.Minute || diff > time.Minute {
		t.Errorf("anchor %v too far from expected %v", anchor, expected)
	}
}
