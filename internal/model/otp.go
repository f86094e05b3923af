package model

import (
	"time"

	"github.com/google/uuid"
)

// OTPPurpose defines what the OTP code is used for
type OTPPurpose string

const (
	OTPPurposeEmailVerification OTPPurpose = "email_verification"
	OTPPurposePasswordReset     OTPPurpose = "password_reset"
	OTPPurposeLogin             OTPPurpose = "login"
)

// OTPStatus tracks whether a code is still eligible for consumption.
// A code goes inactive when it is consumed or superseded by a newer
// issue for the same user and purpose; it never returns to active.
type OTPStatus string

const (
	OTPStatusActive   OTPStatus = "active"
	OTPStatusInactive OTPStatus = "inactive"
)

// OTPCode represents a one-time verification code delivered by email
type OTPCode struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_otp_user_purpose"`
	Code      string     `json:"-" gorm:"size:10;not null"` // numeric string, 6 digits by default
	Purpose   OTPPurpose `json:"purpose" gorm:"size:30;not null;index:idx_otp_user_purpose;default:'email_verification'"`
	Status    OTPStatus  `json:"status" gorm:"size:10;not null;default:'active'"`
	UsedAt    *time.Time `json:"used_at"` // NULL = not yet used
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// IsExpired checks if the code has passed its validity window
func (o *OTPCode) IsExpired() bool {
	return !time.Now().Before(o.ExpiresAt)
}

// IsUsed checks if the code has already been consumed
func (o *OTPCode) IsUsed() bool {
	return o.UsedAt != nil
}

// IsConsumable checks if the code can still be redeemed
func (o *OTPCode) IsConsumable() bool {
	return o.Status == OTPStatusActive && !o.IsUsed() && !o.IsExpired()
}
