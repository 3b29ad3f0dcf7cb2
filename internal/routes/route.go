package routes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hfarhan/workhub/internal/rbac"
)

// Common errors
var (
	ErrEmptyPath        = errors.New("route path must not be empty")
	ErrNoAllowedRoles   = errors.New("protected route must allow at least one role")
	ErrInvalidRoleInSet = errors.New("route allows a role outside the enum")
)

// Route is one declarative entry of the navigation table
type Route struct {
	// Path is an exact URL path, or a prefix pattern ending in "/*" which
	// matches any suffix (used by sub-applications with their own routing).
	Path string

	// Allowed is the set of roles that may mount the route, or the public
	// sentinel for unauthenticated pages.
	Allowed rbac.RoleSet

	// Component names the page content the shell renders for this route.
	// Opaque to this layer.
	Component string
}

// wildcard reports whether the route is a prefix pattern, returning the prefix
func (rt Route) wildcard() (string, bool) {
	if strings.HasSuffix(rt.Path, "/*") {
		return strings.TrimSuffix(rt.Path, "*"), true
	}
	return "", false
}

// matches reports whether the route matches the given request path
func (rt Route) matches(path string) bool {
	if prefix, ok := rt.wildcard(); ok {
		return strings.HasPrefix(path, prefix) || path == strings.TrimSuffix(prefix, "/")
	}
	return rt.Path == path
}

// NotFoundRoute is the terminal route for unmatched paths. Always public so
// the not-found page is never itself gated.
var NotFoundRoute = Route{
	Path:      "",
	Allowed:   rbac.Public(),
	Component: "NotFound",
}

// Table is the immutable, ordered navigation table. Resolution scans
// declaration order, so duplicate paths are tolerated and the first
// declaration wins deterministically.
type Table struct {
	entries []Route
}

// NewTable validates the entries and builds a table. Protected routes must
// allow at least one valid role; exact duplicates are kept as declared.
func NewTable(entries []Route) (*Table, error) {
	for _, rt := range entries {
		if rt.Path == "" {
			return nil, ErrEmptyPath
		}
		if rt.Allowed.IsPublic() {
			continue
		}
		if rt.Allowed.Empty() {
			return nil, fmt.Errorf("%w: %s", ErrNoAllowedRoles, rt.Path)
		}
		if len(rt.Allowed.Members()) != rt.Allowed.Size() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRoleInSet, rt.Path)
		}
	}

	table := &Table{entries: make([]Route, len(entries))}
	copy(table.entries, entries)
	return table, nil
}

// Resolve maps a request path to its route. Unmatched paths resolve to
// NotFoundRoute; found reports whether a declared entry matched.
func (t *Table) Resolve(path string) (route Route, found bool) {
	for _, rt := range t.entries {
		if rt.matches(path) {
			return rt, true
		}
	}
	return NotFoundRoute, false
}

// Len returns the number of declared entries, duplicates included
func (t *Table) Len() int {
	return len(t.entries)
}
