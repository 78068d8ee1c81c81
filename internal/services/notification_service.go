package services

import (
	"fmt"
	"log/slog"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService appends and serves the staff activity feed. Entries are
// informational only: recording never fails the triggering operation, and
// duplicates are allowed.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Record appends one activity entry. Failures are logged and swallowed so a
// feed outage never aborts the caller.
func (s *NotificationService) Record(profileID uuid.UUID, notifType, message string, portfolioID *uuid.UUID) {
	entry := models.AdminNotification{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Type:        notifType,
		Message:     message,
		PortfolioID: portfolioID,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("failed to record activity notification",
			"error", err, "profile_id", profileID, "type", notifType)
	}
}

// List returns one feed page ordered by created_at descending with the total
// count for pagination. Search matches the actor profile's display name,
// case-insensitive; typeFilter restricts to one notification type.
func (s *NotificationService) List(page, pageSize int, search, typeFilter string) ([]models.AdminNotification, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	query := s.db.Model(&models.AdminNotification{}).
		Joins("JOIN profiles ON profiles.id = admin_notifications.profile_id")
	if search != "" {
		query = query.Where("LOWER(profiles.full_name) LIKE ?", likePattern(search))
	}
	if typeFilter != "" {
		query = query.Where("admin_notifications.type = ?", typeFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	var entries []models.AdminNotification
	if err := query.Preload("Profile").
		Order("admin_notifications.created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return entries, total, nil
}

// Purge hard-deletes the given entries. Staff only.
func (s *NotificationService) Purge(ids []uuid.UUID, act actor.Actor) (int64, error) {
	if !act.IsStaff() {
		return 0, ErrForbidden
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.Where("id IN ?", ids).Delete(&models.AdminNotification{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: %v", ErrDownstream, res.Error)
	}
	return res.RowsAffected, nil
}
