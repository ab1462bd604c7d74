package auth

import "nexus-backend/internal/pkg/apperrors"

var (
	ErrEmailExists         = apperrors.New(apperrors.KindConflict, "User with this email already exists")
	ErrNoAccount           = apperrors.New(apperrors.KindNotFound, "No account found for this email")
	ErrInvalidFlow         = apperrors.New(apperrors.KindBadRequest, "Invalid auth flow")
	ErrOrgNameRequired     = apperrors.New(apperrors.KindBadRequest, "Organization name is required for registration")
	ErrInviteTokenRequired = apperrors.New(apperrors.KindBadRequest, "Invitation token is required")
	ErrOAuthExchange       = apperrors.New(apperrors.KindBadRequest, "Failed to verify identity with Google")
	ErrRefreshTokenMissing = apperrors.New(apperrors.KindUnauthorized, "Refresh token not found")
)
