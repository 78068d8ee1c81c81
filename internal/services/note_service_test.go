package services

import (
	"testing"
	"time"

	"github.com/artbranch/admin-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNote(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNoteService(db, NewNotificationService(db))

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	admin := seedProfile(t, db, models.RoleAdmin, models.StatusActive)
	act := actorFor(admin)

	note, err := svc.Create(artist.ID, "Flagged for plagiarism review", act)
	require.NoError(t, err)
	assert.Equal(t, artist.ID, note.TargetUserID)
	assert.Equal(t, admin.ID, note.AuthorAdminID)

	// note creation lands in the activity feed
	var entry models.AdminNotification
	require.NoError(t, db.Where("profile_id = ?", artist.ID).First(&entry).Error)
	assert.Equal(t, models.NotificationAdminNote, entry.Type)
}

func TestCreateNoteValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNoteService(db, NewNotificationService(db))

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)

	_, err := svc.Create(artist.ID, "content", audienceActor())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(artist.ID, "   ", adminActor())
	assert.Error(t, err)

	_, err = svc.Create(uuid.New(), "content", adminActor())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForProfileNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNoteService(db, NewNotificationService(db))

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	admin := seedProfile(t, db, models.RoleAdmin, models.StatusActive)

	older := models.AdminNote{
		ID:            uuid.New(),
		TargetUserID:  artist.ID,
		AuthorAdminID: admin.ID,
		Content:       "first contact",
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&older).Error)

	newer, err := svc.Create(artist.ID, "second contact", actorFor(admin))
	require.NoError(t, err)

	notes, err := svc.ListForProfile(artist.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, newer.ID, notes[0].ID)
	assert.Equal(t, older.ID, notes[1].ID)
	assert.Equal(t, admin.ID, notes[0].Author.ID)
}

func TestDeleteNoteSuperAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNoteService(db, NewNotificationService(db))

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	admin := seedProfile(t, db, models.RoleAdmin, models.StatusActive)
	note, err := svc.Create(artist.ID, "to be removed", actorFor(admin))
	require.NoError(t, err)

	err = svc.Delete(note.ID, adminActor())
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(note.ID, superActor()))

	err = svc.Delete(note.ID, superActor())
	assert.ErrorIs(t, err, ErrNotFound)
}
