package model

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus represents whether a user can be credited with calls
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a member of a sales organization.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID string     `gorm:"size:100;not null;index:idx_users_org_email" json:"organization_id"`
	Email          string     `gorm:"size:255;not null;index:idx_users_org_email" json:"email"`
	Name           string     `gorm:"size:255" json:"name"`
	Status         UserStatus `gorm:"size:20;default:'active';index" json:"status"`

	// PlatformAuthID is the identity assigned by the auth provider; webhook
	// URLs may carry either this or the internal id.
	PlatformAuthID string `gorm:"size:100;index" json:"platform_auth_id"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsActive reports whether the user can own new call records.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
