package services

import (
	"fmt"

	"github.com/artbranch/admin-api/internal/models"
	"gorm.io/gorm"
)

// FeedbackService serves user feedback messages to staff, read-only.
type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// List returns one page of feedback with authors, newest first. Search
// matches the author's display name.
func (s *FeedbackService) List(search string, page, pageSize int) ([]models.Feedback, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	query := s.db.Model(&models.Feedback{}).
		Joins("JOIN profiles ON profiles.id = feedbacks.user_id")
	if search != "" {
		query = query.Where("LOWER(profiles.full_name) LIKE ?", likePattern(search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	var items []models.Feedback
	if err := query.Preload("Profile").
		Order("feedbacks.created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return items, total, nil
}
