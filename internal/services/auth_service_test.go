package services

import (
	"testing"
	"time"

	"github.com/artbranch/admin-api/internal/config"
	"github.com/artbranch/admin-api/internal/dto"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func seedStaff(t *testing.T, db *gorm.DB, role, status, password string) models.Profile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	p := seedProfile(t, db, role, status)
	p.Password = string(hash)
	require.NoError(t, db.Save(&p).Error)
	return p
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	admin := seedStaff(t, db, models.RoleAdmin, models.StatusActive, "correct-horse")

	resp, err := svc.Login(&dto.LoginRequest{Email: admin.Email, Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, admin.ID, resp.User.ID)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestLoginRejections(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	admin := seedStaff(t, db, models.RoleAdmin, models.StatusActive, "correct-horse")
	artist := seedStaff(t, db, models.RoleArtist, models.StatusActive, "correct-horse")
	disabled := seedStaff(t, db, models.RoleAdmin, models.StatusDisabled, "correct-horse")

	_, err := svc.Login(&dto.LoginRequest{Email: admin.Email, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// the admin surface is staff-only
	_, err = svc.Login(&dto.LoginRequest{Email: artist.Email, Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Login(&dto.LoginRequest{Email: disabled.Email, Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	admin := seedStaff(t, db, models.RoleAdmin, models.StatusActive, "correct-horse")
	first, err := svc.Login(&dto.LoginRequest{Email: admin.Email, Password: "correct-horse"})
	require.NoError(t, err)

	second, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the spent token is gone for good
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshExpired(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	admin := seedStaff(t, db, models.RoleAdmin, models.StatusActive, "correct-horse")
	resp, err := svc.Login(&dto.LoginRequest{Email: admin.Email, Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("profile_id = ?", admin.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	admin := seedStaff(t, db, models.RoleAdmin, models.StatusActive, "correct-horse")
	resp, err := svc.Login(&dto.LoginRequest{Email: admin.Email, Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
