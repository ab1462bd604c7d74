package user

import (
	"context"
	"errors"
	"time"

	"nexus-backend/internal/domain"
	"nexus-backend/internal/user/policies"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// tokenInvalidationTTL must outlive the longest token lifetime (refresh, 7d).
const tokenInvalidationTTL = 8 * 24 * time.Hour

// Service holds DB and Redis for membership operations. Rdb may be nil; then
// role changes and removals skip token invalidation.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// GetByID returns the user or a NotFound error.
func (s *Service) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policies.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns the first user with the email across organizations, or
// nil when none exists. Used by the login flow, which has no org context yet.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// ListByOrganization returns all members of the organization.
func (s *Service) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	if err := s.DB.WithContext(ctx).Where("organization_id = ?", orgID).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetOrgUser is the tenant isolation guard: it resolves the target and fails
// with the same AccessDenied for a missing user and for a user in another
// organization. It runs before any role comparison so callers cannot
// distinguish "wrong org" from "insufficient role".
func (s *Service) GetOrgUser(ctx context.Context, targetID uuid.UUID, principal domain.Principal) (*domain.User, error) {
	var target domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", targetID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policies.ErrAccessDenied
		}
		return nil, err
	}
	if target.OrganizationID != principal.OrganizationID {
		return nil, policies.ErrAccessDenied
	}
	return &target, nil
}

// UpdateRole changes the target's role after the tenant guard and role
// governance checks, in one transaction. Outstanding tokens of the target are
// invalidated afterwards so the old authority dies with the role.
func (s *Service) UpdateRole(ctx context.Context, targetID uuid.UUID, newRole string, principal domain.Principal) (*domain.User, error) {
	target, err := s.GetOrgUser(ctx, targetID, principal)
	if err != nil {
		return nil, err
	}

	if err := policies.ValidateRoleChange(policies.ValidateRoleChangeParams{
		ActorUserID:  principal.UserID.String(),
		ActorRole:    principal.Role,
		TargetUserID: target.ID.String(),
		TargetRole:   target.Role,
		NewRole:      newRole,
	}); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&domain.User{}).Where("id = ?", target.ID).Update("role", newRole).Error
	})
	if err != nil {
		return nil, err
	}
	target.Role = newRole

	policies.InvalidateUserTokens(ctx, s.Rdb, target.ID.String(), tokenInvalidationTTL)
	return target, nil
}

// DeleteUser removes the target. The admin requirement is enforced by the
// route gate (AuthorizePermission users:delete) and deliberately not
// re-checked here; the tenant guard and the self-delete rule are.
func (s *Service) DeleteUser(ctx context.Context, targetID uuid.UUID, principal domain.Principal) error {
	target, err := s.GetOrgUser(ctx, targetID, principal)
	if err != nil {
		return err
	}
	if target.ID == principal.UserID {
		return policies.ErrCannotDeleteYourself
	}
	if err := s.DB.WithContext(ctx).Delete(&domain.User{}, "id = ?", target.ID).Error; err != nil {
		return err
	}
	policies.InvalidateUserTokens(ctx, s.Rdb, target.ID.String(), tokenInvalidationTTL)
	return nil
}

// Activate transitions the user to active and refreshes display fields from
// the identity provider. Used on login for a user who has never signed in.
func (s *Service) Activate(ctx context.Context, u *domain.User, name string, profilePicture *string) (*domain.User, error) {
	updates := map[string]interface{}{"status": domain.UserStatusActive}
	if name != "" {
		updates["name"] = name
	}
	if profilePicture != nil {
		updates["profile_picture"] = *profilePicture
	}
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", u.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	u.Status = domain.UserStatusActive
	if name != "" {
		u.Name = name
	}
	if profilePicture != nil {
		u.ProfilePicture = profilePicture
	}
	return u, nil
}
