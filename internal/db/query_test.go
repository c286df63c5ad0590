package db

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "base predicate only",
			filter:   Filter{},
			wantSQL:  "is_active = true",
			wantArgs: nil,
		},
		{
			name:     "blank term is ignored",
			filter:   Filter{SearchFields: []string{"name"}, SearchTerm: "   "},
			wantSQL:  "is_active = true",
			wantArgs: nil,
		},
		{
			name:     "exact filters in column order",
			filter:   Filter{Exact: map[string]any{"status": "approved", "gender": "female"}},
			wantSQL:  "is_active = true AND gender = $1 AND status = $2",
			wantArgs: []any{"female", "approved"},
		},
		{
			name: "exact and search",
			filter: Filter{
				Exact:        map[string]any{"status": "approved"},
				SearchFields: []string{"name", "host"},
				SearchTerm:   " jazz ",
			},
			wantSQL:  "is_active = true AND status = $1 AND (name ILIKE $2 OR host ILIKE $3)",
			wantArgs: []any{"approved", "%jazz%", "%jazz%"},
		},
		{
			name:     "inactive scope",
			filter:   Filter{Scope: ScopeInactive},
			wantSQL:  "is_active = false",
			wantArgs: nil,
		},
		{
			name:     "all scope",
			filter:   Filter{Scope: ScopeAll, Exact: map[string]any{"status": "pending"}},
			wantSQL:  "TRUE AND status = $1",
			wantArgs: []any{"pending"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := BuildFilter(tt.filter)
			if err != nil {
				t.Fatalf("BuildFilter() error = %v", err)
			}
			if got := w.SQL(); got != tt.wantSQL {
				t.Errorf("SQL() = %q, want %q", got, tt.wantSQL)
			}
			if len(w.Args()) != len(tt.wantArgs) {
				t.Fatalf("Args() = %v, want %v", w.Args(), tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if w.Args()[i] != tt.wantArgs[i] {
					t.Errorf("Args()[%d] = %v, want %v", i, w.Args()[i], tt.wantArgs[i])
				}
			}
			if w.Next() != len(tt.wantArgs)+1 {
				t.Errorf("Next() = %d, want %d", w.Next(), len(tt.wantArgs)+1)
			}
		})
	}
}

func TestBuildFilterParameterCount(t *testing.T) {
	exacts := []map[string]any{
		nil,
		{"a": 1},
		{"a": 1, "b": "x", "c": true},
	}
	fieldSets := [][]string{nil, {"name"}, {"name", "host", "region"}}
	terms := []string{"", "jazz"}

	for _, exact := range exacts {
		for _, fields := range fieldSets {
			for _, term := range terms {
				w, err := BuildFilter(Filter{Exact: exact, SearchFields: fields, SearchTerm: term})
				if err != nil {
					t.Fatalf("BuildFilter() error = %v", err)
				}
				want := len(exact)
				if term != "" {
					want += len(fields)
				}
				if len(w.Args()) != want {
					t.Errorf("exact=%v fields=%v term=%q: got %d params, want %d", exact, fields, term, len(w.Args()), want)
				}
				if !strings.HasPrefix(w.SQL(), "is_active = true") {
					t.Errorf("SQL() = %q, missing base predicate", w.SQL())
				}
				if strings.HasSuffix(w.SQL(), "AND") || strings.HasSuffix(w.SQL(), "AND ") {
					t.Errorf("SQL() = %q has trailing AND", w.SQL())
				}
			}
		}
	}
}

func TestBuildFilterRejectsUnsafeColumns(t *testing.T) {
	bad := []string{"name; DROP TABLE users", "Name", "1col", "a-b", "", "name OR 1=1"}
	for _, col := range bad {
		_, err := BuildFilter(Filter{Exact: map[string]any{col: "x"}})
		if !errors.Is(err, ErrInvalidColumn) {
			t.Errorf("Exact column %q: error = %v, want ErrInvalidColumn", col, err)
		}
		_, err = BuildFilter(Filter{SearchFields: []string{col}, SearchTerm: "x"})
		if !errors.Is(err, ErrInvalidColumn) {
			t.Errorf("search field %q: error = %v, want ErrInvalidColumn", col, err)
		}
	}
}

func TestWhereExtensions(t *testing.T) {
	w, err := BuildFilter(Filter{Exact: map[string]any{"submitted_by": int64(7)}})
	if err != nil {
		t.Fatal(err)
	}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if err := w.Contains("podcast_region", "gulf"); err != nil {
		t.Fatal(err)
	}
	if err := w.Contains("podcast_host", "  "); err != nil {
		t.Fatal(err)
	}
	if err := w.Since("created_at", from); err != nil {
		t.Fatal(err)
	}
	if err := w.Before("created_at", to); err != nil {
		t.Fatal(err)
	}

	want := "is_active = true AND submitted_by = $1 AND podcast_region ILIKE $2 AND created_at >= $3 AND created_at < $4"
	if got := w.SQL(); got != want {
		t.Errorf("SQL() = %q, want %q", got, want)
	}
	if w.Next() != 5 {
		t.Errorf("Next() = %d, want 5", w.Next())
	}
}

func TestLikePatternEscapes(t *testing.T) {
	tests := map[string]string{
		"jazz":    "%jazz%",
		"50%":     `%50\%%`,
		"a_b":     `%a\_b%`,
		`back\sl`: `%back\\sl%`,
	}
	for in, want := range tests {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseScope(t *testing.T) {
	tests := map[string]Scope{
		"":      ScopeActive,
		"true":  ScopeActive,
		"false": ScopeInactive,
		"ALL":   ScopeAll,
		"junk":  ScopeActive,
	}
	for in, want := range tests {
		if got := ParseScope(in); got != want {
			t.Errorf("ParseScope(%q) = %v, want %v", in, got, want)
		}
	}
}
