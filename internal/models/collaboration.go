package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collaboration links two artists who worked together; the overview page only
// counts them per month.
type Collaboration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArtistID  uuid.UUID `gorm:"type:uuid;not null;index" json:"artist_id"`
	PartnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"partner_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (c *Collaboration) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
