package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationNotifier delivers the outcome email to an approved artist.
// Implementations must not block the decision path.
type VerificationNotifier interface {
	NotifyApproved(email string)
}

// errDecisionRaced aborts the decide transaction when another decision
// committed first; the caller falls back to the idempotent read path.
var errDecisionRaced = errors.New("decision raced")

// VerificationService resolves verification requests and propagates the
// outcome to the profile status, the activity feed and the artist's inbox.
type VerificationService struct {
	db     *gorm.DB
	status *StatusService
	fanout *NotificationService
	email  VerificationNotifier
}

func NewVerificationService(db *gorm.DB, status *StatusService, fanout *NotificationService, email VerificationNotifier) *VerificationService {
	return &VerificationService{db: db, status: status, fanout: fanout, email: email}
}

// Submit opens a new verification request for a profile and moves the
// profile into verification_pending, both in one transaction. A profile with
// an open request gets ErrConflict.
func (s *VerificationService) Submit(profileID uuid.UUID, socialPlatforms map[string]string, proofImages []string) (*models.VerificationRequest, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	var open models.VerificationRequest
	if err := s.db.Where("user_id = ? AND req_status = ?", profileID, models.ReqStatusPending).First(&open).Error; err == nil {
		return nil, ErrConflict
	}

	platforms, err := json.Marshal(socialPlatforms)
	if err != nil {
		return nil, fmt.Errorf("invalid social platforms: %w", err)
	}
	images, err := json.Marshal(proofImages)
	if err != nil {
		return nil, fmt.Errorf("invalid proof images: %w", err)
	}

	req := models.VerificationRequest{
		ID:              uuid.New(),
		UserID:          profileID,
		SocialPlatforms: platforms,
		ProofImages:     images,
		ReqStatus:       models.ReqStatusPending,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		return s.status.beginVerification(tx, profileID)
	})
	if txErr != nil {
		if errors.Is(txErr, ErrConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, txErr)
	}

	return &req, nil
}

// Decide resolves a pending request to verified or rejected. The request
// outcome, the profile's is_verified flag and the status transition commit
// as one unit; the feed entry and outcome email are best-effort afterwards.
//
// Deciding an already-terminal request is a no-op returning the stored state,
// so duplicate submissions and racing admins converge on the first outcome.
func (s *VerificationService) Decide(requestID uuid.UUID, outcome string, act actor.Actor) (*models.VerificationRequest, error) {
	if outcome != models.ReqStatusVerified && outcome != models.ReqStatusRejected {
		return nil, fmt.Errorf("invalid outcome %q", outcome)
	}

	var req models.VerificationRequest
	if err := s.db.First(&req, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	if req.Decided() {
		return &req, nil
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	target := models.StatusRejected
	if outcome == models.ReqStatusVerified {
		target = models.StatusActive
	}
	now := time.Now()

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional update: only the first decision on a pending request
		// commits, any racer sees zero rows.
		res := tx.Model(&models.VerificationRequest{}).
			Where("id = ? AND req_status = ?", requestID, models.ReqStatusPending).
			Updates(map[string]interface{}{
				"req_status": outcome,
				"decided_by": act.ID,
				"decided_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errDecisionRaced
		}

		if err := tx.Model(&models.Profile{}).
			Where("id = ?", req.UserID).
			Update("is_verified", outcome == models.ReqStatusVerified).Error; err != nil {
			return err
		}

		_, err := s.status.TransitionTx(tx, req.UserID, target, act)
		return err
	})

	switch {
	case txErr == nil:
	case errors.Is(txErr, errDecisionRaced):
		// Someone else decided first; surface their terminal state.
		if err := s.db.First(&req, "id = ?", requestID).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
		}
		return &req, nil
	case errors.Is(txErr, ErrForbidden), errors.Is(txErr, ErrInvalidTransition), errors.Is(txErr, ErrNotFound):
		return nil, txErr
	default:
		return nil, fmt.Errorf("%w: %v", ErrDownstream, txErr)
	}

	req.ReqStatus = outcome
	req.DecidedBy = &act.ID
	req.DecidedAt = &now

	// Informational side effects only: never fail the committed decision.
	notifType := models.NotificationRejected
	message := fmt.Sprintf("%s's verification request was rejected", profile.FullName)
	if outcome == models.ReqStatusVerified {
		notifType = models.NotificationVerified
		message = fmt.Sprintf("%s's verification request was approved", profile.FullName)
	}
	s.fanout.Record(profile.ID, notifType, message, nil)

	if outcome == models.ReqStatusVerified && s.email != nil {
		go s.email.NotifyApproved(profile.Email)
	}

	slog.Info("verification request decided",
		"request_id", requestID, "outcome", outcome, "actor_id", act.ID)
	return &req, nil
}

// List returns a page of verification requests, newest first, with the
// requesting profile preloaded. Search matches the profile's name, email or
// username; reqStatus narrows to one outcome.
func (s *VerificationService) List(search, reqStatus string, page, pageSize int) ([]models.VerificationRequest, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	query := s.db.Model(&models.VerificationRequest{}).
		Joins("JOIN profiles ON profiles.id = verification_requests.user_id")
	if search != "" {
		pattern := likePattern(search)
		query = query.Where(
			"LOWER(profiles.full_name) LIKE ? OR LOWER(profiles.email) LIKE ? OR LOWER(profiles.username) LIKE ?",
			pattern, pattern, pattern)
	}
	if reqStatus != "" {
		query = query.Where("verification_requests.req_status = ?", reqStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	var requests []models.VerificationRequest
	if err := query.Preload("Profile").
		Order("verification_requests.created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return requests, total, nil
}

// GetByUser returns a profile's most recent request.
func (s *VerificationService) GetByUser(profileID uuid.UUID) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := s.db.Where("user_id = ?", profileID).Order("created_at DESC").First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return &req, nil
}

// PurgeByUsers removes all verification requests for the given profiles.
// Admin purge is explicit and rare; open requests are not spared.
func (s *VerificationService) PurgeByUsers(userIDs []uuid.UUID, act actor.Actor) (int64, error) {
	if !act.IsStaff() {
		return 0, ErrForbidden
	}
	if len(userIDs) == 0 {
		return 0, nil
	}
	res := s.db.Where("user_id IN ?", userIDs).Delete(&models.VerificationRequest{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: %v", ErrDownstream, res.Error)
	}
	return res.RowsAffected, nil
}
