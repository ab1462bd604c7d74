package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
// The table is fixed at compile time; there is no dynamic registration.
var PermissionRoles = map[string][]string{
	UsersRead:         {Viewer, Manager, Admin},
	UsersInvite:       {Manager, Admin},
	UsersUpdateRole:   {Manager, Admin},
	UsersDelete:       {Admin},
	InvitationsRead:   {Manager, Admin},
	InvitationsCreate: {Manager, Admin},
}

// HasPermission returns true if role is in the list of allowed roles for the
// permission. Unknown roles and unknown permissions fail closed.
func HasPermission(role, permission string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
