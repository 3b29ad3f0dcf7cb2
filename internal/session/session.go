package session

import "github.com/hfarhan/workhub/internal/rbac"

// User is the authenticated identity held for the lifetime of a session.
// Role is guaranteed valid: it is parsed through the closed enum at the
// claims boundary before a User is ever constructed.
type User struct {
	ID   int64
	Name string
	Role rbac.Role
}
