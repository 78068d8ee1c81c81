package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portfolio is a published content item owned by an artist. Only the fields
// the dashboard reads are modeled here; uploads happen elsewhere.
type Portfolio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user"`
	Slug      string    `gorm:"size:255;index" json:"slug"`
	Title     string    `gorm:"size:255" json:"title"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Profile   Profile   `gorm:"foreignKey:UserID" json:"-"`
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Portfolio) TableName() string {
	return "portfolio"
}
