package policies

import (
	"nexus-backend/internal/constants"
)

type ValidateRoleChangeParams struct {
	ActorUserID  string
	ActorRole    string
	TargetUserID string
	TargetRole   string
	NewRole      string
}

// ValidateRoleChange enforces the role-mutation rules. The tenant guard has
// already resolved the target into the actor's organization, so this is a
// pure check:
//   - nobody edits their own role
//   - managers may only edit users who are currently viewers, and may never
//     assign admin
//   - admins are unrestricted
//
// The route gate already excludes viewers; the minimum-role check is repeated
// here as defense in depth.
func ValidateRoleChange(p ValidateRoleChangeParams) error {
	if !constants.IsValidRole(p.NewRole) {
		return ErrInvalidRole
	}
	if !constants.HasMinimumRole(p.ActorRole, constants.Manager) {
		return ErrInsufficientPermissions
	}
	if p.ActorUserID == p.TargetUserID {
		return ErrCannotChangeOwnRole
	}
	if p.ActorRole == constants.Manager {
		if p.TargetRole != constants.Viewer {
			return ErrManagersEditViewersOnly
		}
		if p.NewRole == constants.Admin {
			return ErrManagersCannotPromoteAdmin
		}
	}
	return nil
}
