package domain

import "github.com/google/uuid"

// Principal is the authenticated (user, organization, role) for one request.
// It is derived from a verified access token plus a user lookup and never
// persisted.
type Principal struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	Name           string
	Role           string
}

// PrincipalFromUser builds the request principal from the resolved user row.
func PrincipalFromUser(u *User) Principal {
	return Principal{
		UserID:         u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
	}
}
