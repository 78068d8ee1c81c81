package services

import (
	"testing"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test. One connection
// only, so every query sees the same memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.VerificationRequest{},
		&models.AdminNotification{},
		&models.AdminNote{},
		&models.Portfolio{},
		&models.Feedback{},
		&models.Collaboration{},
		&models.RefreshToken{},
	))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, role, status string) models.Profile {
	t.Helper()

	p := models.Profile{
		ID:       uuid.New(),
		FullName: "Test " + role,
		Username: "user_" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Role:     role,
		Status:   status,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// actorFor builds the actor matching an existing profile row.
func actorFor(p models.Profile) actor.Actor {
	return actor.Actor{ID: p.ID, Role: p.Role}
}

func adminActor() actor.Actor {
	return actor.Actor{ID: uuid.New(), Role: models.RoleAdmin}
}

func superActor() actor.Actor {
	return actor.Actor{ID: uuid.New(), Role: models.RoleSuperAdmin}
}

func audienceActor() actor.Actor {
	return actor.Actor{ID: uuid.New(), Role: models.RoleAudience}
}
