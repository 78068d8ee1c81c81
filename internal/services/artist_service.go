package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var postalRangePattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// ArtistFilters narrows the artist listing. Search matches full name, email
// or postal code; a "NNNN-NNNN" search selects a postal range instead.
type ArtistFilters struct {
	Search   string
	Category string
	City     string
	Status   string
	Featured *bool
	Role     string
}

// ArtistRow is one listing row: the profile plus its most recent staff note.
type ArtistRow struct {
	models.Profile
	LatestNote *models.AdminNote `json:"latest_note"`
}

type ArtistService struct {
	db     *gorm.DB
	status *StatusService
}

func NewArtistService(db *gorm.DB, status *StatusService) *ArtistService {
	return &ArtistService{db: db, status: status}
}

// List returns a filtered page of artists, newest first, each row carrying
// its latest admin note.
func (s *ArtistService) List(filters ArtistFilters, page, pageSize int) ([]ArtistRow, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	query := s.db.Model(&models.Profile{})
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	} else {
		query = query.Where("role = ?", models.RoleArtist)
	}

	if filters.Search != "" {
		if postalRangePattern.MatchString(filters.Search) {
			bounds := strings.SplitN(filters.Search, "-", 2)
			query = query.Where("postal >= ? AND postal <= ?", bounds[0], bounds[1])
		} else {
			pattern := likePattern(filters.Search)
			query = query.Where(
				"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(postal) LIKE ?",
				pattern, pattern, pattern)
		}
	}
	if filters.Category != "" {
		query = query.Where("LOWER(CAST(categories AS TEXT)) LIKE ?", likePattern(filters.Category))
	}
	if filters.City != "" {
		query = query.Where("LOWER(city) LIKE ?", likePattern(filters.City))
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Featured != nil {
		query = query.Where("is_featured = ?", *filters.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	var profiles []models.Profile
	if err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&profiles).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	rows := make([]ArtistRow, len(profiles))
	latest, err := s.latestNotes(profiles)
	if err != nil {
		return nil, 0, err
	}
	for i, p := range profiles {
		rows[i] = ArtistRow{Profile: p, LatestNote: latest[p.ID]}
	}
	return rows, total, nil
}

// latestNotes maps each listed profile to its newest admin note.
func (s *ArtistService) latestNotes(profiles []models.Profile) (map[uuid.UUID]*models.AdminNote, error) {
	result := make(map[uuid.UUID]*models.AdminNote, len(profiles))
	if len(profiles) == 0 {
		return result, nil
	}
	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}

	var notes []models.AdminNote
	if err := s.db.Where("target_user_id IN ?", ids).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	for i := range notes {
		if _, seen := result[notes[i].TargetUserID]; !seen {
			result[notes[i].TargetUserID] = &notes[i]
		}
	}
	return result, nil
}

// GetByID fetches one profile.
func (s *ArtistService) GetByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return &profile, nil
}

// ArtistEdit carries the editable fields; nil means leave unchanged.
type ArtistEdit struct {
	FullName   *string
	Categories []string
	Status     *string
}

// Edit updates an artist's display fields. Status changes go through the
// status authority so the transition table applies to form edits too.
func (s *ArtistService) Edit(id uuid.UUID, edit ArtistEdit, act actor.Actor) (*models.Profile, error) {
	if !act.IsStaff() {
		return nil, ErrForbidden
	}

	profile, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if edit.FullName != nil {
		updates["full_name"] = *edit.FullName
	}
	if edit.Categories != nil {
		encoded, err := json.Marshal(edit.Categories)
		if err != nil {
			return nil, fmt.Errorf("invalid categories: %w", err)
		}
		updates["categories"] = datatypes.JSON(encoded)
	}

	// Field updates and the status transition commit or roll back as one
	// unit, so a refused transition leaves the whole edit unapplied.
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Profile{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrDownstream, err)
			}
		}
		if edit.Status != nil && *edit.Status != profile.Status {
			if _, err := s.status.TransitionTx(tx, id, *edit.Status, act); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(id)
}

// SetFeatured toggles the featured flag.
func (s *ArtistService) SetFeatured(id uuid.UUID, featured bool, act actor.Actor) error {
	if !act.IsStaff() {
		return ErrForbidden
	}
	res := s.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_featured", featured)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrDownstream, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft-deletes the given profiles and drops their open verification
// requests so the pending invariant holds for the survivors.
func (s *ArtistService) Delete(ids []uuid.UUID, act actor.Actor) (int64, error) {
	if !act.IsStaff() {
		return 0, ErrForbidden
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id IN ? AND req_status = ?", ids, models.ReqStatusPending).
			Delete(&models.VerificationRequest{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Profile{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if txErr != nil {
		return 0, fmt.Errorf("%w: %v", ErrDownstream, txErr)
	}
	return deleted, nil
}

// Categories returns the distinct category names across all artists.
func (s *ArtistService) Categories() ([]string, error) {
	var raw []datatypes.JSON
	if err := s.db.Model(&models.Profile{}).
		Where("role = ?", models.RoleArtist).
		Pluck("categories", &raw).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	seen := make(map[string]struct{})
	for _, blob := range raw {
		if len(blob) == 0 {
			continue
		}
		var cats []string
		if err := json.Unmarshal(blob, &cats); err != nil {
			continue
		}
		for _, c := range cats {
			seen[c] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for c := range seen {
		result = append(result, c)
	}
	sort.Strings(result)
	return result, nil
}

// Latest returns the most recently joined artists for the overview page.
func (s *ArtistService) Latest(limit int) ([]models.Profile, error) {
	if limit < 1 || limit > maxPageSize {
		limit = 6
	}
	var profiles []models.Profile
	if err := s.db.Where("role = ?", models.RoleArtist).
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return profiles, nil
}
