package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusExpired  = "expired"
)

// Invitation is a single-use capability to join one organization with a
// pre-assigned role. Transitions are one-directional: pending → accepted or
// pending → expired, nothing out of a terminal state.
type Invitation struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null" json:"organization_id"`
	Email          string    `gorm:"column:email;not null" json:"email"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Role           string    `gorm:"column:role;not null" json:"role"`
	Token          string    `gorm:"column:token;not null;uniqueIndex" json:"token"`
	InvitedBy      uuid.UUID `gorm:"column:invited_by;type:uuid;not null" json:"invited_by"`
	Status         string    `gorm:"column:status;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
