package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserStatusPending = "pending"
	UserStatusActive  = "active"
)

// User is a member of exactly one organization. Email is unique per
// organization, not globally: the same address may exist in two tenants.
type User struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:uq_user_email_org" json:"organization_id"`
	Email          string    `gorm:"column:email;not null;uniqueIndex:uq_user_email_org;index" json:"email"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	ProfilePicture *string   `gorm:"column:profile_picture" json:"profile_picture"`
	Role           string    `gorm:"column:role;not null;default:viewer" json:"role"`
	Status         string    `gorm:"column:status;not null;default:pending" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate ensures id is set for DBs without default uuid.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
