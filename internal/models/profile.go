package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile roles as stored in the profiles table.
const (
	RoleArtist     = "Artist"
	RoleAudience   = "Audience"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

// Profile lifecycle statuses. A profile sits in verification_pending exactly
// while it has an open verification request.
const (
	StatusActive              = "active"
	StatusDisabled            = "disabled"
	StatusRejected            = "rejected"
	StatusVerificationPending = "verification_pending"
)

// Profile is one platform user: artist, audience member or staff.
type Profile struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FullName   string         `gorm:"size:255;index" json:"full_name"`
	Username   string         `gorm:"size:100;index" json:"username"`
	Email      string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string         `gorm:"size:255" json:"-"`
	Role       string         `gorm:"size:20;not null;default:'Audience';index" json:"role"`
	Status     string         `gorm:"size:30;not null;default:'active';index" json:"status"`
	IsFeatured bool           `gorm:"not null;default:false" json:"is_featured"`
	IsVerified bool           `gorm:"not null;default:false" json:"is_verified"`
	Categories datatypes.JSON `json:"categories"`
	City       string         `gorm:"size:100" json:"city"`
	Postal     string         `gorm:"size:20" json:"postal"`
	AvatarURL  string         `gorm:"size:512" json:"profile"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsStaff reports whether the profile may use the admin surface.
func (p *Profile) IsStaff() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}
