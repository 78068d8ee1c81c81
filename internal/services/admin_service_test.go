package services

import (
	"testing"

	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, NewStatusService(db))

	admin, err := svc.Create("New Admin", "Admin@Example.com", "supersecret", superActor())
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, models.StatusActive, admin.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("supersecret")))
}

func TestCreateAdminValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, NewStatusService(db))

	_, err := svc.Create("X", "x@example.com", "supersecret", adminActor())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create("X", "x@example.com", "short", superActor())
	assert.Error(t, err)

	_, err = svc.Create("X", "x@example.com", "supersecret", superActor())
	require.NoError(t, err)
	_, err = svc.Create("Y", "X@example.com", "supersecret", superActor())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAdminListShowsAdminsOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, NewStatusService(db))

	admin := seedProfile(t, db, models.RoleAdmin, models.StatusActive)
	seedProfile(t, db, models.RoleSuperAdmin, models.StatusActive)
	seedProfile(t, db, models.RoleArtist, models.StatusActive)

	admins, total, err := svc.List(AdminFilters{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, admins, 1)
	assert.Equal(t, admin.ID, admins[0].ID)
}

func TestAdminEdit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, NewStatusService(db))

	admin := seedProfile(t, db, models.RoleAdmin, models.StatusActive)

	name := "Renamed"
	status := models.StatusDisabled
	updated, err := svc.Edit(admin.ID, AdminEdit{FullName: &name, Status: &status}, superActor())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FullName)
	assert.Equal(t, models.StatusDisabled, updated.Status)
}

func TestAdminEditRefusedStatusLeavesFieldsUntouched(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, NewStatusService(db))

	admin := seedProfile(t, db, models.RoleAdmin, models.StatusRejected)

	name := "Should Not Stick"
	status := models.StatusActive
	_, err := svc.Edit(admin.ID, AdminEdit{FullName: &name, Status: &status}, superActor())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var stored models.Profile
	require.NoError(t, db.First(&stored, "id = ?", admin.ID).Error)
	assert.Equal(t, admin.FullName, stored.FullName)
	assert.Equal(t, models.StatusRejected, stored.Status)
}

func TestAdminDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, NewStatusService(db))

	admin := seedProfile(t, db, models.RoleAdmin, models.StatusActive)
	super := seedProfile(t, db, models.RoleSuperAdmin, models.StatusActive)

	token := models.RefreshToken{
		ID:        uuid.New(),
		ProfileID: admin.ID,
		TokenHash: "deadbeef",
	}
	require.NoError(t, db.Create(&token).Error)

	_, err := svc.Delete([]uuid.UUID{admin.ID}, adminActor())
	assert.ErrorIs(t, err, ErrForbidden)

	// super admin rows are never bulk-deleted
	deleted, err := svc.Delete([]uuid.UUID{admin.ID, super.ID}, superActor())
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var tokens int64
	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("profile_id = ?", admin.ID).Count(&tokens).Error)
	assert.Zero(t, tokens)

	_, err = svc.GetByID(super.ID)
	assert.NoError(t, err)
}
