package invitations

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"nexus-backend/internal/constants"
	"nexus-backend/internal/domain"
	"nexus-backend/internal/emails"
	"nexus-backend/internal/invitations/policies"
	"nexus-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const inviteExpiry = 7 * 24 * time.Hour

// Service governs the invitation lifecycle. Sender dispatches the invitation
// email; StrictEmail decides whether a failed dispatch rolls back creation.
type Service struct {
	DB          *gorm.DB
	Sender      emails.Sender
	FrontendURL string
	StrictEmail bool
}

type CreateInvitationInput struct {
	OrganizationID uuid.UUID
	Email          string
	Name           string
	Role           string
	InvitedBy      uuid.UUID
	InviterName    string
}

// Create validates the duplicate rules, generates an unguessable token, and
// persists a pending invitation expiring in 7 days. The conflict checks and
// the insert run in one transaction. Email dispatch is best-effort unless
// StrictEmail is set, in which case a failed send rolls the creation back.
func (s *Service) Create(ctx context.Context, in CreateInvitationInput) (*domain.Invitation, error) {
	if !validation.IsValidEmail(in.Email) {
		return nil, policies.ErrInvalidInviteEmail
	}
	if !constants.IsValidRole(in.Role) {
		return nil, policies.ErrInvalidInviteRole
	}

	inv := &domain.Invitation{
		OrganizationID: in.OrganizationID,
		Email:          in.Email,
		Name:           in.Name,
		Role:           in.Role,
		Token:          randomToken(),
		InvitedBy:      in.InvitedBy,
		Status:         domain.InvitationStatusPending,
		ExpiresAt:      time.Now().Add(inviteExpiry),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := policies.ValidateInviteCreation(tx, in.Email, in.OrganizationID); err != nil {
			return err
		}
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		if s.StrictEmail {
			return s.dispatch(ctx, inv, in.InviterName)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !s.StrictEmail {
		if err := s.dispatch(ctx, inv, in.InviterName); err != nil {
			log.Warn().Err(err).Str("email", inv.Email).Msg("invitation email dispatch failed")
		}
	}
	return inv, nil
}

func (s *Service) dispatch(ctx context.Context, inv *domain.Invitation, inviterName string) error {
	if s.Sender == nil {
		return nil
	}
	var org domain.Organization
	orgName := "your organization"
	if err := s.DB.WithContext(ctx).Where("id = ?", inv.OrganizationID).First(&org).Error; err == nil {
		orgName = org.Name
	}
	link := fmt.Sprintf("%s/invite/accept?token=%s", s.FrontendURL, inv.Token)
	return s.Sender.SendInvitation(ctx, inv.Email, inviterName, orgName, link)
}

// GetByToken returns the invitation for a token, or NotFound.
func (s *Service) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := s.DB.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policies.ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// PreviewResult is the public, tokenless view shown before the invitee starts
// OAuth. Intentionally omits the token and internal IDs.
type PreviewResult struct {
	InviteeName      string    `json:"invitee_name"`
	InviteeEmail     string    `json:"invitee_email"`
	OrganizationName string    `json:"organization_name"`
	Role             string    `json:"role"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// Preview is read-only: a non-pending or missing invitation is NotFound, a
// past deadline is Expired with no status write-back (that happens on accept).
func (s *Service) Preview(ctx context.Context, token string) (*PreviewResult, error) {
	inv, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvitationStatusPending {
		return nil, policies.ErrInvitationNotFound
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, policies.ErrInvitationExpired
	}

	var org domain.Organization
	orgName := "your organization"
	if err := s.DB.WithContext(ctx).Where("id = ?", inv.OrganizationID).First(&org).Error; err == nil {
		orgName = org.Name
	}
	return &PreviewResult{
		InviteeName:      inv.Name,
		InviteeEmail:     inv.Email,
		OrganizationName: orgName,
		Role:             inv.Role,
		ExpiresAt:        inv.ExpiresAt,
	}, nil
}

// Accept redeems the invitation: it creates the member with the pre-assigned
// role and transitions the invitation to accepted in one transaction. The
// status update is conditional on the row still being pending, so a
// concurrent second acceptance rolls back its user and fails InvalidState
// instead of minting a duplicate member. Expiry is materialized lazily here:
// the EXPIRED write-back persists even though the accept itself fails.
func (s *Service) Accept(ctx context.Context, token, oauthEmail, oauthName string, profilePicture *string) (*domain.User, error) {
	inv, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvitationStatusPending {
		return nil, policies.ErrInvitationNotPending
	}
	if time.Now().After(inv.ExpiresAt) {
		s.DB.WithContext(ctx).Model(&domain.Invitation{}).
			Where("id = ? AND status = ?", inv.ID, domain.InvitationStatusPending).
			Update("status", domain.InvitationStatusExpired)
		return nil, policies.ErrInvitationExpired
	}
	if err := policies.ValidateInviteAcceptance(inv, oauthEmail); err != nil {
		return nil, err
	}

	name := oauthName
	if name == "" {
		name = inv.Name
	}
	user := &domain.User{
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Name:           name,
		Role:           inv.Role,
		Status:         domain.UserStatusActive,
		ProfilePicture: profilePicture,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.Invitation{}).
			Where("id = ? AND status = ?", inv.ID, domain.InvitationStatusPending).
			Update("status", domain.InvitationStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race: someone else already redeemed the token.
			return policies.ErrInvitationNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListPending returns the organization's pending invitations.
func (s *Service) ListPending(ctx context.Context, orgID uuid.UUID) ([]domain.Invitation, error) {
	var invs []domain.Invitation
	if err := s.DB.WithContext(ctx).
		Where("organization_id = ? AND status = ?", orgID, domain.InvitationStatusPending).
		Order("created_at ASC").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

// randomToken returns a URL-safe token with 32 bytes of entropy. The token is
// the sole credential for joining the organization, so it must be unguessable.
func randomToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
