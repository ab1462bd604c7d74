package policies

import (
	"errors"
	"strings"

	"nexus-backend/internal/domain"
	"nexus-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyInOrg      = apperrors.New(apperrors.KindConflict, "User with this email already exists in the organization")
	ErrPendingInviteExists   = apperrors.New(apperrors.KindConflict, "A pending invitation already exists for this email")
	ErrInvitationNotFound    = apperrors.New(apperrors.KindNotFound, "Invitation not found")
	ErrInvitationNotPending  = apperrors.New(apperrors.KindInvalidState, "Invitation is no longer valid")
	ErrInvitationExpired     = apperrors.New(apperrors.KindExpired, "Invitation has expired")
	ErrEmailMismatch         = apperrors.New(apperrors.KindUnauthorized, "OAuth email does not match invitation email")
	ErrInvalidInviteEmail    = apperrors.New(apperrors.KindBadRequest, "Invalid email format")
	ErrInvalidInviteRole     = apperrors.New(apperrors.KindBadRequest, "Invalid role")
)

// ValidateInviteCreation enforces the duplicate rules: at most one member and
// at most one pending invitation per (email, organization). The same email in
// a different organization is fine.
func ValidateInviteCreation(db *gorm.DB, email string, orgID uuid.UUID) error {
	normalized := strings.ToLower(email)

	var user domain.User
	err := db.Where("LOWER(email) = ? AND organization_id = ?", normalized, orgID).First(&user).Error
	if err == nil {
		return ErrUserAlreadyInOrg
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var invite domain.Invitation
	err = db.Where("LOWER(email) = ? AND organization_id = ? AND status = ?",
		normalized, orgID, domain.InvitationStatusPending).First(&invite).Error
	if err == nil {
		return ErrPendingInviteExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ValidateInviteAcceptance binds acceptance to the invited address,
// case-insensitively.
func ValidateInviteAcceptance(invitation *domain.Invitation, oauthEmail string) error {
	if !strings.EqualFold(invitation.Email, oauthEmail) {
		return ErrEmailMismatch
	}
	return nil
}
