package policies

import "nexus-backend/internal/pkg/apperrors"

var (
	// ErrAccessDenied is returned for both a missing target and a target in
	// another organization, so a caller cannot probe tenant boundaries.
	ErrAccessDenied = apperrors.New(apperrors.KindAccessDenied, "Access denied")

	ErrCannotChangeOwnRole        = apperrors.New(apperrors.KindInvalidOperation, "Cannot change your own role")
	ErrCannotDeleteYourself       = apperrors.New(apperrors.KindInvalidOperation, "Cannot delete yourself")
	ErrManagersEditViewersOnly    = apperrors.New(apperrors.KindForbidden, "Managers can only edit the role of Viewers")
	ErrManagersCannotPromoteAdmin = apperrors.New(apperrors.KindForbidden, "Managers cannot promote users to Admin")
	ErrInsufficientPermissions    = apperrors.New(apperrors.KindForbidden, "Insufficient permissions")
	ErrInvalidRole                = apperrors.New(apperrors.KindBadRequest, "Invalid role")
	ErrUserNotFound               = apperrors.New(apperrors.KindNotFound, "User not found")
)
