// Package router provides the route registration and dispatch core: a
// method-aware route table with deterministic first-registered-wins
// matching, and a dispatcher that turns every inbound request into exactly
// one response.
package router

import (
	"fmt"
	"net/http"
	"strings"
)

// Params holds path parameter values extracted during matching, keyed by
// placeholder name.
type Params map[string]string

// Methods accepted by Table.Register, in the canonical order used when
// rendering the Allow header.
var methodOrder = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

var knownMethods = func() map[string]bool {
	m := make(map[string]bool, len(methodOrder))
	for _, method := range methodOrder {
		m[method] = true
	}
	return m
}()

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentParam
	segmentWildcard
)

// segment is one piece of a parsed pattern. For literals, value is the
// segment text; for placeholders and wildcards, it is the placeholder name.
type segment struct {
	value string
	kind  segmentKind
}

// Route binds a method and path pattern to a handler. Routes are created
// by Table.Register and never mutated afterwards.
type Route struct {
	Method  string
	Pattern string
	Handler Handler

	segments []segment
}

// match attempts to satisfy the route's pattern with the given concrete
// path segments. Literal segments compare case-sensitively, a placeholder
// consumes exactly one non-empty segment, and a trailing wildcard consumes
// the entire remainder, including an empty one.
func (r *Route) match(path []string) (Params, bool) {
	var params Params

	for i, seg := range r.segments {
		switch seg.kind {
		case segmentWildcard:
			if params == nil {
				params = Params{}
			}
			params[seg.value] = strings.Join(path[i:], "/")
			return params, true
		case segmentParam:
			if i >= len(path) || path[i] == "" {
				return nil, false
			}
			if params == nil {
				params = Params{}
			}
			params[seg.value] = path[i]
		case segmentLiteral:
			if i >= len(path) || path[i] != seg.value {
				return nil, false
			}
		}
	}

	if len(path) != len(r.segments) {
		return nil, false
	}
	return params, true
}

func normalizeMethod(method string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	if !knownMethods[m] {
		return "", fmt.Errorf("%q: %w", method, ErrUnknownMethod)
	}
	return m, nil
}

// normalizePath strips a single trailing slash so /users/42/ and /users/42
// resolve identically. The root path is left alone.
func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func splitPath(path string) []string {
	if path == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// parsePattern validates a pattern and returns its normalized form along
// with the parsed segments. Patterns are /-separated sequences of literal
// segments, {name} placeholders, and at most one trailing {name...}
// wildcard.
func parsePattern(pattern string) (string, []segment, error) {
	if pattern == "" || pattern[0] != '/' {
		return "", nil, fmt.Errorf("%q must begin with '/': %w", pattern, ErrInvalidPattern)
	}

	normalized := normalizePath(pattern)
	if normalized == "/" {
		return normalized, nil, nil
	}

	raw := splitPath(normalized)
	segments := make([]segment, 0, len(raw))
	seen := map[string]bool{}

	for i, s := range raw {
		switch {
		case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
			name := s[1 : len(s)-1]
			kind := segmentParam

			if strings.HasSuffix(name, "...") {
				name = strings.TrimSuffix(name, "...")
				kind = segmentWildcard
				if i != len(raw)-1 {
					return "", nil, fmt.Errorf("%q: wildcard must be the final segment: %w", pattern, ErrInvalidPattern)
				}
			}
			if name == "" {
				return "", nil, fmt.Errorf("%q: empty placeholder name: %w", pattern, ErrInvalidPattern)
			}
			if seen[name] {
				return "", nil, fmt.Errorf("%q: placeholder %q repeats: %w", pattern, name, ErrInvalidPattern)
			}
			seen[name] = true

			segments = append(segments, segment{value: name, kind: kind})
		case s == "":
			return "", nil, fmt.Errorf("%q: empty segment: %w", pattern, ErrInvalidPattern)
		default:
			segments = append(segments, segment{value: s, kind: segmentLiteral})
		}
	}

	return normalized, segments, nil
}
