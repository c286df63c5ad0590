package db

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Scope selects which rows a listing may see by their is_active flag.
type Scope int

const (
	// ScopeActive restricts a listing to rows that have not been soft-deleted.
	ScopeActive Scope = iota
	// ScopeInactive returns only soft-deleted rows. Admin views only.
	ScopeInactive
	// ScopeAll returns every row. Admin views only.
	ScopeAll
)

// ParseScope maps the admin is_active query parameter onto a Scope.
// Anything unrecognised falls back to ScopeActive.
func ParseScope(s string) Scope {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "false":
		return ScopeInactive
	case "all":
		return ScopeAll
	}
	return ScopeActive
}

func (s Scope) predicate() string {
	switch s {
	case ScopeInactive:
		return "is_active = false"
	case ScopeAll:
		return "TRUE"
	}
	return "is_active = true"
}

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkColumn(col string) error {
	if !columnPattern.MatchString(col) {
		return fmt.Errorf("%w: %q", ErrInvalidColumn, col)
	}
	return nil
}

// Filter is the input of BuildFilter.
type Filter struct {
	Scope        Scope
	Exact        map[string]any // column -> value, compared with =
	SearchFields []string
	SearchTerm   string
}

// Where is a parameterised WHERE clause. Values are always bound, never
// interpolated, and placeholders are numbered from $1 without gaps.
type Where struct {
	parts []string
	args  []any
}

// BuildFilter builds the WHERE clause for a listing. The scope predicate is
// always first. Exact filters follow in column order, then the search term as
// a single OR group with one bound parameter per field.
func BuildFilter(f Filter) (*Where, error) {
	w := &Where{parts: []string{f.Scope.predicate()}}

	cols := make([]string, 0, len(f.Exact))
	for col := range f.Exact {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		if err := w.Eq(col, f.Exact[col]); err != nil {
			return nil, err
		}
	}

	if err := w.Search(f.SearchFields, f.SearchTerm); err != nil {
		return nil, err
	}
	return w, nil
}

// SQL returns the clause without the WHERE keyword.
func (w *Where) SQL() string {
	return strings.Join(w.parts, " AND ")
}

// Args returns the bound values in placeholder order.
func (w *Where) Args() []any {
	return w.args
}

// Next returns the next free placeholder index.
func (w *Where) Next() int {
	return len(w.args) + 1
}

func (w *Where) bind(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

// Eq adds col = value.
func (w *Where) Eq(col string, v any) error {
	if err := checkColumn(col); err != nil {
		return err
	}
	w.parts = append(w.parts, col+" = "+w.bind(v))
	return nil
}

// Contains adds a case-insensitive substring match on col. Blank terms are ignored.
func (w *Where) Contains(col, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	if err := checkColumn(col); err != nil {
		return err
	}
	w.parts = append(w.parts, col+" ILIKE "+w.bind(likePattern(term)))
	return nil
}

// Search adds (f1 ILIKE $n OR f2 ILIKE $n+1 ...). Blank terms or an empty
// field list are ignored.
func (w *Where) Search(fields []string, term string) error {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return nil
	}
	ors := make([]string, 0, len(fields))
	for _, col := range fields {
		if err := checkColumn(col); err != nil {
			return err
		}
		ors = append(ors, col+" ILIKE "+w.bind(likePattern(term)))
	}
	w.parts = append(w.parts, "("+strings.Join(ors, " OR ")+")")
	return nil
}

// Since adds col >= t.
func (w *Where) Since(col string, t time.Time) error {
	if err := checkColumn(col); err != nil {
		return err
	}
	w.parts = append(w.parts, col+" >= "+w.bind(t))
	return nil
}

// Before adds col < t.
func (w *Where) Before(col string, t time.Time) error {
	if err := checkColumn(col); err != nil {
		return err
	}
	w.parts = append(w.parts, col+" < "+w.bind(t))
	return nil
}

// likePattern wraps term in % after escaping the LIKE metacharacters, so a
// user typing "50%" matches the literal text.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
