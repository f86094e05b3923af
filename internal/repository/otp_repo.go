package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"gorm.io/gorm"
)

// OTPRepository handles database operations for one-time codes
type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Issue deactivates every active code for (user, purpose) and inserts the
// new one in a single transaction, so two concurrent issues cannot leave
// two rows active at once.
func (r *OTPRepository) Issue(otp *model.OTPCode) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.OTPCode{}).
			Where("user_id = ? AND purpose = ? AND status = ?",
				otp.UserID, otp.Purpose, model.OTPStatusActive).
			Update("status", model.OTPStatusInactive).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

// FindConsumable finds the newest active, unused, unexpired code matching
// the given user, code and purpose. gorm.ErrRecordNotFound is the expected
// outcome for a wrong or stale code, not a fault.
func (r *OTPRepository) FindConsumable(userID uuid.UUID, code string, purpose model.OTPPurpose) (*model.OTPCode, error) {
	var otp model.OTPCode
	err := r.db.
		Where("user_id = ? AND code = ? AND purpose = ? AND status = ? AND used_at IS NULL AND expires_at > ?",
			userID, code, purpose, model.OTPStatusActive, time.Now()).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// Consume marks a code as used and retires it. The used_at guard makes a
// concurrent double-consume produce exactly one winner; re-consuming an
// already-used row affects zero rows and is not an error.
func (r *OTPRepository) Consume(otpID uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&model.OTPCode{}).
		Where("id = ? AND used_at IS NULL", otpID).
		Updates(map[string]interface{}{
			"used_at": now,
			"status":  model.OTPStatusInactive,
		}).Error
}

// InvalidateAll retires every active code for a user and purpose without
// marking them used (superseded, never redeemed).
func (r *OTPRepository) InvalidateAll(userID uuid.UUID, purpose model.OTPPurpose) error {
	return r.db.Model(&model.OTPCode{}).
		Where("user_id = ? AND purpose = ? AND status = ?",
			userID, purpose, model.OTPStatusActive).
		Update("status", model.OTPStatusInactive).Error
}

// CountRecent counts codes issued to a user since the given time (rate limiting)
func (r *OTPRepository) CountRecent(userID uuid.UUID, purpose model.OTPPurpose, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.OTPCode{}).
		Where("user_id = ? AND purpose = ? AND created_at > ?", userID, purpose, since).
		Count(&count).Error
	return count, err
}

// CleanupExpired removes expired, never-used codes (operational housekeeping;
// request paths never delete rows)
func (r *OTPRepository) CleanupExpired() error {
	return r.db.
		Where("expires_at < ? AND used_at IS NULL", time.Now()).
		Delete(&model.OTPCode{}).Error
}
