package constants

const (
	UsersRead         = "users:read"
	UsersInvite       = "users:invite"
	UsersUpdateRole   = "users:update_role"
	UsersDelete       = "users:delete"
	InvitationsRead   = "invitations:read"
	InvitationsCreate = "invitations:create"
)
