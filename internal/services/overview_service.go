package services

import (
	"fmt"
	"time"

	"github.com/artbranch/admin-api/internal/models"
	"gorm.io/gorm"
)

// YearlyStats holds per-month counts for one calendar year, index 0 = January.
type YearlyStats struct {
	Year           int       `json:"year"`
	Profiles       [12]int64 `json:"profiles"`
	Artists        [12]int64 `json:"artists"`
	Portfolios     [12]int64 `json:"portfolios"`
	Collaborations [12]int64 `json:"collaborations"`
}

// OverviewService computes the dashboard landing-page numbers.
type OverviewService struct {
	db *gorm.DB
}

func NewOverviewService(db *gorm.DB) *OverviewService {
	return &OverviewService{db: db}
}

// Stats buckets signups, uploads and collaborations by month for one year.
// Bucketing happens in Go so the query stays portable across dialects.
func (s *OverviewService) Stats(year int) (*YearlyStats, error) {
	stats := &YearlyStats{Year: year}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var err error
	if err = s.bucket(&stats.Profiles, from, to,
		s.db.Model(&models.Profile{})); err != nil {
		return nil, err
	}
	if err = s.bucket(&stats.Artists, from, to,
		s.db.Model(&models.Profile{}).Where("role = ?", models.RoleArtist)); err != nil {
		return nil, err
	}
	if err = s.bucket(&stats.Portfolios, from, to,
		s.db.Model(&models.Portfolio{})); err != nil {
		return nil, err
	}
	if err = s.bucket(&stats.Collaborations, from, to,
		s.db.Model(&models.Collaboration{})); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *OverviewService) bucket(months *[12]int64, from, to time.Time, query *gorm.DB) error {
	var stamps []time.Time
	if err := query.Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("created_at", &stamps).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	for _, ts := range stamps {
		months[ts.UTC().Month()-1]++
	}
	return nil
}

// StaleArtists lists portfolio items older than six months together with the
// owning artist, newest first. Search matches artist name or email.
func (s *OverviewService) StaleArtists(search string, page, pageSize int) ([]models.Portfolio, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	cutoff := time.Now().AddDate(0, -6, 0)

	query := s.db.Model(&models.Portfolio{}).
		Joins("JOIN profiles ON profiles.id = portfolio.user_id").
		Where("portfolio.created_at < ?", cutoff)
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(profiles.full_name) LIKE ? OR LOWER(profiles.email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	var items []models.Portfolio
	if err := query.Preload("Profile").
		Order("portfolio.created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	return items, total, nil
}
