package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService manages staff accounts. Listing shows Admin-role profiles
// only; super admins are managed out of band.
type AdminService struct {
	db     *gorm.DB
	status *StatusService
}

func NewAdminService(db *gorm.DB, status *StatusService) *AdminService {
	return &AdminService{db: db, status: status}
}

type AdminFilters struct {
	Search string // matches full name or email
	Status string
}

func (s *AdminService) List(filters AdminFilters, page, pageSize int) ([]models.Profile, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	query := s.db.Model(&models.Profile{}).Where("role = ?", models.RoleAdmin)
	if filters.Search != "" {
		pattern := likePattern(filters.Search)
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	var admins []models.Profile
	if err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&admins).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return admins, total, nil
}

func (s *AdminService) GetByID(id uuid.UUID) (*models.Profile, error) {
	var admin models.Profile
	if err := s.db.Where("role IN ?", []string{models.RoleAdmin, models.RoleSuperAdmin}).
		First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return &admin, nil
}

// Create provisions a new Admin account. Super admin only.
func (s *AdminService) Create(fullName, email, password string, act actor.Actor) (*models.Profile, error) {
	if !act.IsSuperAdmin() {
		return nil, ErrForbidden
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || len(password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.Profile
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.Profile{
		ID:       uuid.New(),
		FullName: fullName,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return &admin, nil
}

// AdminEdit carries editable staff fields; nil leaves a field unchanged.
type AdminEdit struct {
	FullName *string
	Email    *string
	Status   *string
}

func (s *AdminService) Edit(id uuid.UUID, edit AdminEdit, act actor.Actor) (*models.Profile, error) {
	if !act.IsStaff() {
		return nil, ErrForbidden
	}

	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if edit.FullName != nil {
		updates["full_name"] = *edit.FullName
	}
	if edit.Email != nil {
		updates["email"] = strings.TrimSpace(strings.ToLower(*edit.Email))
	}

	// One transaction: a refused status transition must not leave the
	// field edits behind.
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Profile{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrDownstream, err)
			}
		}
		if edit.Status != nil && *edit.Status != admin.Status {
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

// Delete removes staff accounts and revokes their sessions. Super admin only.
func (s *AdminService) Delete(ids []uuid.UUID, act actor.Actor) (int64, error) {
	if !act.IsSuperAdmin() {
		return 0, ErrForbidden
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id IN ?", ids).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ? AND role = ?", ids, models.RoleAdmin).Delete(&models.Profile{})
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
