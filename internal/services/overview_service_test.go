package services

import (
	"testing"
	"time"

	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProfileAt(t *testing.T, db *gorm.DB, role string, created time.Time) models.Profile {
	t.Helper()

	p := models.Profile{
		ID:        uuid.New(),
		Email:     uuid.NewString()[:8] + "@example.com",
		Role:      role,
		Status:    models.StatusActive,
		CreatedAt: created,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestStatsBucketsByMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOverviewService(db)

	jan := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	mar := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)

	artist := seedProfileAt(t, db, models.RoleArtist, jan)
	seedProfileAt(t, db, models.RoleAudience, jan)
	seedProfileAt(t, db, models.RoleArtist, mar)
	// outside the requested year
	seedProfileAt(t, db, models.RoleArtist, jan.AddDate(-1, 0, 0))

	item := models.Portfolio{
		ID:        uuid.New(),
		UserID:    artist.ID,
		Title:     "Spring series",
		CreatedAt: mar,
	}
	require.NoError(t, db.Create(&item).Error)

	stats, err := svc.Stats(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, stats.Year)
	assert.EqualValues(t, 2, stats.Profiles[0])
	assert.EqualValues(t, 1, stats.Profiles[2])
	assert.EqualValues(t, 1, stats.Artists[0])
	assert.EqualValues(t, 1, stats.Artists[2])
	assert.EqualValues(t, 1, stats.Portfolios[2])
	assert.EqualValues(t, 0, stats.Collaborations[2])
}

func TestStaleArtists(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOverviewService(db)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	artist.FullName = "Alice Painter"
	require.NoError(t, db.Save(&artist).Error)

	stale := models.Portfolio{
		ID:        uuid.New(),
		UserID:    artist.ID,
		Title:     "Forgotten series",
		CreatedAt: time.Now().AddDate(0, -8, 0),
	}
	require.NoError(t, db.Create(&stale).Error)

	fresh := models.Portfolio{
		ID:        uuid.New(),
		UserID:    artist.ID,
		Title:     "Current series",
		CreatedAt: time.Now().AddDate(0, -1, 0),
	}
	require.NoError(t, db.Create(&fresh).Error)

	items, total, err := svc.StaleArtists("", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, stale.ID, items[0].ID)
	assert.Equal(t, artist.ID, items[0].Profile.ID)

	_, total, err = svc.StaleArtists("nobody", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
