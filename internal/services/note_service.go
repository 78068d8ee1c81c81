package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteService manages staff annotations on profiles. Notes are append-only;
// corrections are new notes.
type NoteService struct {
	db     *gorm.DB
	fanout *NotificationService
}

func NewNoteService(db *gorm.DB, fanout *NotificationService) *NoteService {
	return &NoteService{db: db, fanout: fanout}
}

// Create attaches a note to a profile. Any staff member may create one.
func (s *NoteService) Create(targetUserID uuid.UUID, content string, act actor.Actor) (*models.AdminNote, error) {
	if !act.IsStaff() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("note content is required")
	}

	var target models.Profile
	if err := s.db.First(&target, "id = ?", targetUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	note := models.AdminNote{
		ID:            uuid.New(),
		TargetUserID:  targetUserID,
		AuthorAdminID: act.ID,
		Content:       content,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	s.fanout.Record(targetUserID, models.NotificationAdminNote,
		fmt.Sprintf("Note added to %s", target.FullName), nil)

	return &note, nil
}

// ListForProfile returns a profile's notes, newest first, with authors.
func (s *NoteService) ListForProfile(targetUserID uuid.UUID) ([]models.AdminNote, error) {
	var notes []models.AdminNote
	if err := s.db.Where("target_user_id = ?", targetUserID).
		Preload("Author").
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return notes, nil
}

// Delete removes a note. Only super admins may delete.
func (s *NoteService) Delete(noteID uuid.UUID, act actor.Actor) error {
	if !act.IsSuperAdmin() {
		return ErrForbidden
	}
	res := s.db.Where("id = ?", noteID).Delete(&models.AdminNote{})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrDownstream, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
