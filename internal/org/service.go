package org

import (
	"context"
	"errors"

	"nexus-backend/internal/constants"
	"nexus-backend/internal/domain"
	"nexus-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrOrgNotFound = apperrors.New(apperrors.KindNotFound, "Organization not found")

// Service encapsulates organization lifecycle operations.
type Service struct {
	DB *gorm.DB
}

// Register creates a new organization and its founding admin in one
// transaction. This is the only path that creates a user without an
// invitation; the founder is active immediately.
func (s *Service) Register(ctx context.Context, orgName, adminEmail, adminName string, profilePicture *string) (*domain.Organization, *domain.User, error) {
	org := &domain.Organization{Name: orgName}
	admin := &domain.User{
		Email:          adminEmail,
		Name:           adminName,
		Role:           constants.Admin,
		Status:         domain.UserStatusActive,
		ProfilePicture: profilePicture,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		admin.OrganizationID = org.ID
		return tx.Create(admin).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return org, admin, nil
}

// GetByID returns the organization or NotFound.
func (s *Service) GetByID(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	if err := s.DB.WithContext(ctx).Where("id = ?", orgID).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	return &org, nil
}

// Delete removes the organization. Owned users and invitations cascade at the
// persistence layer (ON DELETE CASCADE on their FKs); the core issues a
// single delete and does not enumerate children.
func (s *Service) Delete(ctx context.Context, orgID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&domain.Organization{}, "id = ?", orgID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrgNotFound
	}
	return nil
}
