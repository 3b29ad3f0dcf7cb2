package rbac

// RoleSet is the set of roles allowed to access a route. The zero value is
// the empty set; Public() builds the sentinel meaning "no auth required".
type RoleSet struct {
	public bool
	roles  map[Role]struct{}
}

// NewRoleSet builds a set from the given roles
func NewRoleSet(roles ...Role) RoleSet {
	set := RoleSet{roles: make(map[Role]struct{}, len(roles))}
	for _, r := range roles {
		set.roles[r] = struct{}{}
	}
	return set
}

// Public returns the sentinel set that admits everyone, session or not
func Public() RoleSet {
	return RoleSet{public: true}
}

// IsPublic reports whether the set is the public sentinel
func (s RoleSet) IsPublic() bool {
	return s.public
}

// Contains reports strict membership; always false for the public sentinel
func (s RoleSet) Contains(r Role) bool {
	_, ok := s.roles[r]
	return ok
}

// Empty reports whether the set admits no role at all
func (s RoleSet) Empty() bool {
	return !s.public && len(s.roles) == 0
}

// Size returns the number of roles in the set, valid or not
func (s RoleSet) Size() int {
	return len(s.roles)
}

// Members returns the valid roles in the set, in enum declaration order.
// Anything outside the enum is omitted; compare against Size to detect it.
func (s RoleSet) Members() []Role {
	members := make([]Role, 0, len(s.roles))
	for _, r := range Roles {
		if _, ok := s.roles[r]; ok {
			members = append(members, r)
		}
	}
	return members
}

// Allowed is the guard predicate: public sets admit everyone, a missing
// session (empty role) admits nothing else, otherwise set membership decides.
// Pure and total; it never inspects anything beyond its arguments.
func Allowed(userRole Role, allowed RoleSet) bool {
	if allowed.IsPublic() {
		return true
	}
	if userRole == "" {
		return false
	}
	return allowed.Contains(userRole)
}

// Decision is the outcome of a guard check, keeping the
// not-logged-in and wrong-role cases distinguishable.
type Decision struct {
	Allowed  bool
	Redirect string // where to send the caller when not allowed
}

// LoginPath is where unauthenticated access is redirected
const LoginPath = "/login"

// Decide evaluates the guard and computes the redirect for denials:
// unauthenticated goes to login, a wrong role goes to its own dashboard.
func Decide(userRole Role, allowed RoleSet) Decision {
	if Allowed(userRole, allowed) {
		return Decision{Allowed: true}
	}
	if userRole == "" {
		return Decision{Redirect: LoginPath}
	}
	return Decision{Redirect: userRole.DashboardPath()}
}
