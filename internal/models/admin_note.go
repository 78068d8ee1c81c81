package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminNote is a free-text staff annotation on a profile. Notes are never
// edited in place; corrections are new notes.
type AdminNote struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TargetUserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AuthorAdminID uuid.UUID `gorm:"type:uuid;not null;index" json:"author_admin_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	Target        Profile   `gorm:"foreignKey:TargetUserID" json:"-"`
	Author        Profile   `gorm:"foreignKey:AuthorAdminID" json:"-"`
}

func (n *AdminNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (AdminNote) TableName() string {
	return "admin_notes"
}
