package policies

import (
	"testing"

	"nexus-backend/internal/constants"

	"github.com/stretchr/testify/assert"
)

func TestValidateRoleChange(t *testing.T) {
	cases := []struct {
		name    string
		params  ValidateRoleChangeParams
		wantErr error
	}{
		{
			name:   "admin promotes viewer to admin",
			params: ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Admin, TargetUserID: "b", TargetRole: constants.Viewer, NewRole: constants.Admin},
		},
		{
			name:   "admin demotes admin to viewer",
			params: ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Admin, TargetUserID: "b", TargetRole: constants.Admin, NewRole: constants.Viewer},
		},
		{
			name:   "manager promotes viewer to manager",
			params: ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Manager, TargetUserID: "b", TargetRole: constants.Viewer, NewRole: constants.Manager},
		},
		{
			name:    "invalid role rejected first",
			params:  ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Admin, TargetUserID: "b", TargetRole: constants.Viewer, NewRole: "owner"},
			wantErr: ErrInvalidRole,
		},
		{
			name:    "viewer actor rejected",
			params:  ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Viewer, TargetUserID: "b", TargetRole: constants.Viewer, NewRole: constants.Manager},
			wantErr: ErrInsufficientPermissions,
		},
		{
			name:    "self change rejected",
			params:  ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Admin, TargetUserID: "a", TargetRole: constants.Admin, NewRole: constants.Viewer},
			wantErr: ErrCannotChangeOwnRole,
		},
		{
			name:    "manager cannot edit manager",
			params:  ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Manager, TargetUserID: "b", TargetRole: constants.Manager, NewRole: constants.Viewer},
			wantErr: ErrManagersEditViewersOnly,
		},
		{
			name:    "manager cannot edit admin",
			params:  ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Manager, TargetUserID: "b", TargetRole: constants.Admin, NewRole: constants.Viewer},
			wantErr: ErrManagersEditViewersOnly,
		},
		{
			name:    "manager cannot promote to admin",
			params:  ValidateRoleChangeParams{ActorUserID: "a", ActorRole: constants.Manager, TargetUserID: "b", TargetRole: constants.Viewer, NewRole: constants.Admin},
			wantErr: ErrManagersCannotPromoteAdmin,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRoleChange(tc.params)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
