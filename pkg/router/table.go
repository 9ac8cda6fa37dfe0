package router

import (
	"fmt"
	"strings"
)

// Outcome classifies the result of a table lookup.
type Outcome int

// Lookup outcomes.
const (
	OutcomeMatched Outcome = iota
	OutcomeMethodNotAllowed
	OutcomeNotFound
)

// MatchResult is the outcome of resolving a (method, path) pair. Route and
// Params are set for OutcomeMatched; Allow is set for
// OutcomeMethodNotAllowed and lists the methods that would have matched the
// path, in canonical method order.
type MatchResult struct {
	Outcome Outcome
	Route   *Route
	Params  Params
	Allow   []string
}

// Table maps methods to their registered routes, preserving registration
// order. Registration happens during a single-threaded initialization
// phase; once Freeze is called the table is read-only and safe for
// concurrent lookups without locking.
type Table struct {
	routes map[string][]*Route
	frozen bool
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		routes: map[string][]*Route{},
	}
}

// Register binds a (method, pattern) pair to a handler. The pattern is
// normalized by stripping a trailing slash unless it is the root. It fails
// if the table is frozen, the method is unknown, the pattern is invalid,
// the handler is nil, or an identical (method, normalized pattern) pair is
// already registered. A failed registration leaves the table unchanged.
func (t *Table) Register(method, pattern string, handler Handler) error {
	if t.frozen {
		return fmt.Errorf("register %s %s: %w", method, pattern, ErrTableFrozen)
	}

	m, err := normalizeMethod(method)
	if err != nil {
		return fmt.Errorf("register %s: %w", pattern, err)
	}

	normalized, segments, err := parsePattern(pattern)
	if err != nil {
		return fmt.Errorf("register %s: %w", m, err)
	}

	if handler == nil {
		return fmt.Errorf("register %s %s: %w", m, normalized, ErrNilHandler)
	}

	for _, existing := range t.routes[m] {
		if existing.Pattern == normalized {
			return fmt.Errorf("register %s %s: %w", m, normalized, ErrDuplicateRoute)
		}
	}

	t.routes[m] = append(t.routes[m], &Route{
		Method:   m,
		Pattern:  normalized,
		Handler:  handler,
		segments: segments,
	})
	return nil
}

// Freeze marks the end of the registration phase. Subsequent Register
// calls fail with ErrTableFrozen. Freeze is idempotent.
func (t *Table) Freeze() {
	t.frozen = true
}

// Frozen reports whether the registration phase has ended.
func (t *Table) Frozen() bool {
	return t.frozen
}

// Len returns the number of registered routes across all methods.
func (t *Table) Len() int {
	n := 0
	for _, routes := range t.routes {
		n += len(routes)
	}
	return n
}

// Match resolves a concrete (method, path) pair against the table. Routes
// registered under the method are scanned in registration order and the
// first whose pattern fully matches the path wins; no specificity ranking
// is applied. When no route under the method matches but routes under
// other methods would, the result is OutcomeMethodNotAllowed with those
// methods in Allow. Match has no side effects.
func (t *Table) Match(method, path string) MatchResult {
	m := strings.ToUpper(method)
	segments := splitPath(normalizePath(path))

	for _, route := range t.routes[m] {
		if params, ok := route.match(segments); ok {
			return MatchResult{
				Outcome: OutcomeMatched,
				Route:   route,
				Params:  params,
			}
		}
	}

	var allow []string
	for _, other := range methodOrder {
		if other == m {
			continue
		}
		for _, route := range t.routes[other] {
			if _, ok := route.match(segments); ok {
				allow = append(allow, other)
				break
			}
		}
	}

	if len(allow) > 0 {
		return MatchResult{
			Outcome: OutcomeMethodNotAllowed,
			Allow:   allow,
		}
	}
	return MatchResult{Outcome: OutcomeNotFound}
}
