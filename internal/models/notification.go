package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity notification types shown in the staff feed.
const (
	NotificationNewPost    = "new_post"
	NotificationUpdatePost = "update_post"
	NotificationVerified   = "verification_verified"
	NotificationRejected   = "verification_rejected"
	NotificationAdminNote  = "admin_note"
)

// AdminNotification is an append-only activity feed entry. Rows are never
// updated; staff may purge them in bulk.
type AdminNotification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"profile_id"`
	Type        string     `gorm:"size:40;not null;index" json:"type"`
	Message     string     `gorm:"type:text" json:"message"`
	PortfolioID *uuid.UUID `gorm:"type:uuid" json:"portfolio_id"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	Profile     Profile    `gorm:"foreignKey:ProfileID" json:"-"`
}

func (n *AdminNotification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (AdminNotification) TableName() string {
	return "admin_notifications"
}
