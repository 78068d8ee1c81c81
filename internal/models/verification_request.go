package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Verification request outcomes. Terminal states are immutable; a fresh
// submission after rejection creates a new row.
const (
	ReqStatusPending  = "pending"
	ReqStatusVerified = "verified"
	ReqStatusRejected = "rejected"
)

// VerificationRequest is an artist's proof-of-identity submission. At most one
// pending request may exist per profile at a time.
type VerificationRequest struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	SocialPlatforms datatypes.JSON `json:"social_platforms"`
	ProofImages     datatypes.JSON `json:"proof_images"`
	ReqStatus       string         `gorm:"size:20;not null;default:'pending';index" json:"req_status"`
	DecidedBy       *uuid.UUID     `gorm:"type:uuid;index" json:"decided_by"`
	DecidedAt       *time.Time     `json:"decided_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Profile         Profile        `gorm:"foreignKey:UserID" json:"-"`
}

func (r *VerificationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Decided reports whether the request has reached a terminal outcome.
func (r *VerificationRequest) Decided() bool {
	return r.ReqStatus != ReqStatusPending
}
