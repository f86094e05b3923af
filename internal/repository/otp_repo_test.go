package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newOTPTestDB opens an in-memory database with the otp_codes table laid
// out like the migration. IDs are assigned by the tests since sqlite has
// no gen_random_uuid().
func newOTPTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE otp_codes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		code TEXT NOT NULL,
		purpose TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		used_at DATETIME,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	)`).Error)
	return db
}

func activeCode(userID uuid.UUID, code string) *model.OTPCode {
	return &model.OTPCode{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		Purpose:   model.OTPPurposePasswordReset,
		Status:    model.OTPStatusActive,
		ExpiresAt: time.Now().Add(3 * time.Minute),
	}
}

func TestOTPRepository_IssueSupersedesActiveCode(t *testing.T) {
	db := newOTPTestDB(t)
	repo := NewOTPRepository(db)
	userID := uuid.New()

	first := activeCode(userID, "111111")
	require.NoError(t, repo.Issue(first))

	second := activeCode(userID, "222222")
	require.NoError(t, repo.Issue(second))

	// The earlier code is retired and no longer redeemable
	_, err := repo.FindConsumable(userID, "111111", model.OTPPurposePasswordReset)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.FindConsumable(userID, "222222", model.OTPPurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	// At most one row stays active for the (user, purpose) pair
	var active int64
	require.NoError(t, db.Model(&model.OTPCode{}).
		Where("user_id = ? AND purpose = ? AND status = ?",
			userID, model.OTPPurposePasswordReset, model.OTPStatusActive).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)

	// Superseded means retired without ever being used
	var superseded model.OTPCode
	require.NoError(t, db.First(&superseded, "id = ?", first.ID).Error)
	assert.Equal(t, model.OTPStatusInactive, superseded.Status)
	assert.Nil(t, superseded.UsedAt)
}

func TestOTPRepository_IssueLeavesOtherPurposesAlone(t *testing.T) {
	db := newOTPTestDB(t)
	repo := NewOTPRepository(db)
	userID := uuid.New()

	reset := activeCode(userID, "111111")
	require.NoError(t, repo.Issue(reset))

	verify := activeCode(userID, "222222")
	verify.Purpose = model.OTPPurposeEmailVerification
	require.NoError(t, repo.Issue(verify))

	got, err := repo.FindConsumable(userID, "111111", model.OTPPurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, reset.ID, got.ID)
}

func TestOTPRepository_ConsumeIsIdempotent(t *testing.T) {
	db := newOTPTestDB(t)
	repo := NewOTPRepository(db)
	userID := uuid.New()

	otp := activeCode(userID, "123456")
	require.NoError(t, repo.Issue(otp))
	require.NoError(t, repo.Consume(otp.ID))

	var stored model.OTPCode
	require.NoError(t, db.First(&stored, "id = ?", otp.ID).Error)
	require.NotNil(t, stored.UsedAt)
	firstUsedAt := *stored.UsedAt

	// Re-consuming matches zero rows: no error, original timestamp kept
	require.NoError(t, repo.Consume(otp.ID))
	require.NoError(t, db.First(&stored, "id = ?", otp.ID).Error)
	assert.Equal(t, model.OTPStatusInactive, stored.Status)
	assert.WithinDuration(t, firstUsedAt, *stored.UsedAt, time.Millisecond)

	_, err := repo.FindConsumable(userID, "123456", model.OTPPurposePasswordReset)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOTPRepository_FindConsumable_SkipsExpired(t *testing.T) {
	db := newOTPTestDB(t)
	repo := NewOTPRepository(db)
	userID := uuid.New()

	expired := activeCode(userID, "123456")
	expired.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, repo.Issue(expired))

	_, err := repo.FindConsumable(userID, "123456", model.OTPPurposePasswordReset)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOTPRepository_InvalidateAll(t *testing.T) {
	db := newOTPTestDB(t)
	repo := NewOTPRepository(db)
	userID := uuid.New()

	otp := activeCode(userID, "123456")
	require.NoError(t, repo.Issue(otp))
	require.NoError(t, repo.InvalidateAll(userID, model.OTPPurposePasswordReset))

	var stored model.OTPCode
	require.NoError(t, db.First(&stored, "id = ?", otp.ID).Error)
	assert.Equal(t, model.OTPStatusInactive, stored.Status)
	assert.Nil(t, stored.UsedAt)
}
