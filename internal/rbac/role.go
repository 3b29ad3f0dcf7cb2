package rbac

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnknownRole = errors.New("unknown role")
)

// Role identifies a user's permission tier. The set of roles is closed:
// anything outside it must be rejected at the boundary, never defaulted.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleTeamLead Role = "team_lead"
	RoleEmployee Role = "employee"
)

// Roles lists every valid role
var Roles = []Role{RoleAdmin, RoleHR, RoleManager, RoleTeamLead, RoleEmployee}

// ParseRole validates a role string against the closed enum
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if s == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid reports whether r is a member of the closed enum
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}

// DashboardPath returns the role's own landing page, used as the
// forbidden-access fallback so a logged-in user is never bounced to login
func (r Role) DashboardPath() string {
	return "/" + string(r) + "/dashboard"
}
