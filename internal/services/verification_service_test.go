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

// captureNotifier records outcome emails for assertions.
type captureNotifier struct {
	sent chan string
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{sent: make(chan string, 1)}
}

func (n *captureNotifier) NotifyApproved(email string) {
	n.sent <- email
}

func newVerificationService(db *gorm.DB, email VerificationNotifier) *VerificationService {
	status := NewStatusService(db)
	fanout := NewNotificationService(db)
	return NewVerificationService(db, status, fanout, email)
}

func TestSubmitOpensPendingRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)

	req, err := svc.Submit(artist.ID,
		map[string]string{"instagram": "@artist"},
		[]string{"https://cdn.example.com/proof.jpg"})
	require.NoError(t, err)
	assert.Equal(t, models.ReqStatusPending, req.ReqStatus)
	assert.Nil(t, req.DecidedBy)

	var stored models.Profile
	require.NoError(t, db.First(&stored, "id = ?", artist.ID).Error)
	assert.Equal(t, models.StatusVerificationPending, stored.Status)
}

func TestSubmitRejectsSecondOpenRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)

	_, err := svc.Submit(artist.ID, nil, nil)
	require.NoError(t, err)

	_, err = svc.Submit(artist.ID, nil, nil)
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.VerificationRequest{}).
		Where("user_id = ?", artist.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitUnknownProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	_, err := svc.Submit(uuid.New(), nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecideVerified(t *testing.T) {
	db := setupTestDB(t)
	notifier := newCaptureNotifier()
	svc := newVerificationService(db, notifier)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	req, err := svc.Submit(artist.ID, nil, nil)
	require.NoError(t, err)

	admin := adminActor()
	decided, err := svc.Decide(req.ID, models.ReqStatusVerified, admin)
	require.NoError(t, err)
	assert.Equal(t, models.ReqStatusVerified, decided.ReqStatus)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, admin.ID, *decided.DecidedBy)
	assert.NotNil(t, decided.DecidedAt)

	var stored models.Profile
	require.NoError(t, db.First(&stored, "id = ?", artist.ID).Error)
	assert.Equal(t, models.StatusActive, stored.Status)
	assert.True(t, stored.IsVerified)

	var entry models.AdminNotification
	require.NoError(t, db.Where("profile_id = ?", artist.ID).First(&entry).Error)
	assert.Equal(t, models.NotificationVerified, entry.Type)

	select {
	case email := <-notifier.sent:
		assert.Equal(t, artist.Email, email)
	case <-time.After(2 * time.Second):
		t.Fatal("outcome email was not sent")
	}
}

func TestDecideRejected(t *testing.T) {
	db := setupTestDB(t)
	notifier := newCaptureNotifier()
	svc := newVerificationService(db, notifier)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	req, err := svc.Submit(artist.ID, nil, nil)
	require.NoError(t, err)

	decided, err := svc.Decide(req.ID, models.ReqStatusRejected, adminActor())
	require.NoError(t, err)
	assert.Equal(t, models.ReqStatusRejected, decided.ReqStatus)

	var stored models.Profile
	require.NoError(t, db.First(&stored, "id = ?", artist.ID).Error)
	assert.Equal(t, models.StatusRejected, stored.Status)
	assert.False(t, stored.IsVerified)

	var entry models.AdminNotification
	require.NoError(t, db.Where("profile_id = ?", artist.ID).First(&entry).Error)
	assert.Equal(t, models.NotificationRejected, entry.Type)

	// rejection sends no email
	select {
	case email := <-notifier.sent:
		t.Fatalf("unexpected email to %s", email)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDecideIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	req, err := svc.Submit(artist.ID, nil, nil)
	require.NoError(t, err)

	first, err := svc.Decide(req.ID, models.ReqStatusVerified, adminActor())
	require.NoError(t, err)

	// A second, contradictory decision is a no-op returning the stored state.
	second, err := svc.Decide(req.ID, models.ReqStatusRejected, adminActor())
	require.NoError(t, err)
	assert.Equal(t, models.ReqStatusVerified, second.ReqStatus)
	assert.Equal(t, first.DecidedBy, second.DecidedBy)

	var stored models.Profile
	require.NoError(t, db.First(&stored, "id = ?", artist.ID).Error)
	assert.Equal(t, models.StatusActive, stored.Status)
	assert.True(t, stored.IsVerified)
}

func TestDecideRaceLoserObservesWinner(t *testing.T) {
	db := setupTestDB(t)
	notifier := newCaptureNotifier()
	svc := newVerificationService(db, notifier)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	req, err := svc.Submit(artist.ID, nil, nil)
	require.NoError(t, err)

	// Commit a verified outcome behind the loser's back, after its initial
	// read returns the still-pending row but before its transaction runs.
	winner := adminActor()
	decidedAt := time.Now()
	flipped := false
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("decide_race_winner", func(tx *gorm.DB) {
		if flipped || tx.Statement.Table != "verification_requests" {
			return
		}
		flipped = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"UPDATE verification_requests SET req_status = ?, decided_by = ?, decided_at = ? WHERE id = ?",
			models.ReqStatusVerified, winner.ID, decidedAt, req.ID)
	}))
	defer db.Callback().Query().Remove("decide_race_winner")

	loser := adminActor()
	decided, err := svc.Decide(req.ID, models.ReqStatusRejected, loser)
	require.NoError(t, err)
	assert.Equal(t, models.ReqStatusVerified, decided.ReqStatus)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, winner.ID, *decided.DecidedBy)

	// The loser's transaction rolled back without touching the profile.
	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", artist.ID).Error)
	assert.Equal(t, models.StatusVerificationPending, profile.Status)
	assert.False(t, profile.IsVerified)

	// And without emitting side effects of its own.
	var feed int64
	require.NoError(t, db.Model(&models.AdminNotification{}).Count(&feed).Error)
	assert.Zero(t, feed)
	select {
	case email := <-notifier.sent:
		t.Fatalf("unexpected email to %s", email)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDecideInvalidOutcome(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	_, err := svc.Decide(uuid.New(), "maybe", adminActor())
	assert.Error(t, err)
}

func TestDecideUnknownRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	_, err := svc.Decide(uuid.New(), models.ReqStatusVerified, adminActor())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecideForbiddenRollsBackEverything(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	req, err := svc.Submit(artist.ID, nil, nil)
	require.NoError(t, err)

	_, err = svc.Decide(req.ID, models.ReqStatusVerified, audienceActor())
	assert.ErrorIs(t, err, ErrForbidden)

	// Nothing committed: request still pending, profile untouched.
	var storedReq models.VerificationRequest
	require.NoError(t, db.First(&storedReq, "id = ?", req.ID).Error)
	assert.Equal(t, models.ReqStatusPending, storedReq.ReqStatus)

	var storedProfile models.Profile
	require.NoError(t, db.First(&storedProfile, "id = ?", artist.ID).Error)
	assert.Equal(t, models.StatusVerificationPending, storedProfile.Status)
	assert.False(t, storedProfile.IsVerified)
}

func TestListFiltersByStatusAndSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	alice := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	alice.FullName = "Alice Painter"
	require.NoError(t, db.Save(&alice).Error)
	bob := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	bob.FullName = "Bob Sculptor"
	require.NoError(t, db.Save(&bob).Error)

	reqAlice, err := svc.Submit(alice.ID, nil, nil)
	require.NoError(t, err)
	_, err = svc.Submit(bob.ID, nil, nil)
	require.NoError(t, err)

	_, err = svc.Decide(reqAlice.ID, models.ReqStatusVerified, adminActor())
	require.NoError(t, err)

	pending, total, err := svc.List("", models.ReqStatusPending, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, bob.ID, pending[0].UserID)
	assert.Equal(t, bob.ID, pending[0].Profile.ID)

	byName, total, err := svc.List("alice", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byName, 1)
	assert.Equal(t, alice.ID, byName[0].UserID)
}

func TestGetByUserReturnsNewest(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)

	old := models.VerificationRequest{
		ID:        uuid.New(),
		UserID:    artist.ID,
		ReqStatus: models.ReqStatusRejected,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(&old).Error)

	fresh, err := svc.Submit(artist.ID, nil, nil)
	require.NoError(t, err)

	got, err := svc.GetByUser(artist.ID)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)
}

func TestPurgeByUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := newVerificationService(db, nil)

	artist := seedProfile(t, db, models.RoleArtist, models.StatusActive)
	_, err := svc.Submit(artist.ID, nil, nil)
	require.NoError(t, err)

	_, err = svc.PurgeByUsers([]uuid.UUID{artist.ID}, audienceActor())
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := svc.PurgeByUsers([]uuid.UUID{artist.ID}, adminActor())
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = svc.GetByUser(artist.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
