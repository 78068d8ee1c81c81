package services

import (
	"errors"
	"fmt"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedTransitions is the canonical transition table, enforced server-side.
// verification_pending is deliberately absent as a target: a profile only
// enters it through VerificationService.Submit, and leaves it only through a
// decision. In particular a pending profile cannot be disabled directly.
var allowedTransitions = map[string][]string{
	models.StatusActive:              {models.StatusDisabled, models.StatusRejected},
	models.StatusDisabled:            {models.StatusActive},
	models.StatusRejected:            {},
	models.StatusVerificationPending: {models.StatusActive, models.StatusRejected},
}

// CanTransition reports whether target is reachable from current.
func CanTransition(current, target string) bool {
	for _, next := range allowedTransitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// StatusTransition is the result of a successful transition, returned so the
// caller can react (notification, email) without this service doing either.
type StatusTransition struct {
	Previous string `json:"previous"`
	Next     string `json:"next"`
}

// StatusService is the single authority for profile status writes.
type StatusService struct {
	db *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// Transition moves a profile to target after validating the actor's privilege
// and the transition table.
func (s *StatusService) Transition(profileID uuid.UUID, target string, act actor.Actor) (*StatusTransition, error) {
	return s.transition(s.db, profileID, target, act)
}

// TransitionTx runs Transition inside the caller's transaction so the status
// change commits or rolls back together with the caller's writes.
func (s *StatusService) TransitionTx(tx *gorm.DB, profileID uuid.UUID, target string, act actor.Actor) (*StatusTransition, error) {
	return s.transition(tx, profileID, target, act)
}

func (s *StatusService) transition(db *gorm.DB, profileID uuid.UUID, target string, act actor.Actor) (*StatusTransition, error) {
	if !act.IsStaff() {
		return nil, ErrForbidden
	}

	var profile models.Profile
	if err := db.First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	if !CanTransition(profile.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, profile.Status, target)
	}

	// Conditional update: a racing transition from the same status loses and
	// reports InvalidTransition instead of silently overwriting.
	res := db.Model(&models.Profile{}).
		Where("id = ? AND status = ?", profileID, profile.Status).
		Update("status", target)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: concurrent status change on %s", ErrInvalidTransition, profileID)
	}

	return &StatusTransition{Previous: profile.Status, Next: target}, nil
}

// beginVerification moves a profile into verification_pending. Only the
// verification workflow calls this, on behalf of the profile owner, inside
// the transaction that creates the request.
func (s *StatusService) beginVerification(tx *gorm.DB, profileID uuid.UUID) error {
	res := tx.Model(&models.Profile{}).
		Where("id = ? AND status <> ?", profileID, models.StatusVerificationPending).
		Update("status", models.StatusVerificationPending)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrDownstream, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
