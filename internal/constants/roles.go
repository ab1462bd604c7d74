package constants

const (
	Admin   = "admin"
	Manager = "manager"
	Viewer  = "viewer"
)

// ValidRoles is the set of allowed DB enum values for user role.
var ValidRoles = []string{Viewer, Manager, Admin}

// roleRank fixes the total order viewer < manager < admin.
var roleRank = map[string]int{
	Viewer:  0,
	Manager: 1,
	Admin:   2,
}

// IsValidRole returns true if role is one of the allowed enum values.
func IsValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// HasMinimumRole returns true iff actual ranks at or above required.
// Unknown roles never satisfy any requirement.
func HasMinimumRole(actual, required string) bool {
	a, ok := roleRank[actual]
	if !ok {
		return false
	}
	r, ok := roleRank[required]
	if !ok {
		return false
	}
	return a >= r
}
