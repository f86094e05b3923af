package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Cap on codes issued per user/purpose within the rate window.
const (
	otpRateWindow = 10 * time.Minute
	otpRateLimit  = 5
)

// OTPStore is the persistence surface the OTP service needs
type OTPStore interface {
	Issue(otp *model.OTPCode) error
	FindConsumable(userID uuid.UUID, code string, purpose model.OTPPurpose) (*model.OTPCode, error)
	Consume(otpID uuid.UUID) error
	InvalidateAll(userID uuid.UUID, purpose model.OTPPurpose) error
	CountRecent(userID uuid.UUID, purpose model.OTPPurpose, since time.Time) (int64, error)
}

// OTPUserStore is the slice of user persistence the OTP flows touch
type OTPUserStore interface {
	FindByEmail(email string) (*model.User, error)
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
}

// CodeSender delivers a verification code to a user
type CodeSender interface {
	SendOTP(toEmail, name, code string, expiryMinutes int, purpose string) error
}

// OTPService implements issue / verify / consume for one-time codes and
// the password reset flow built on top of them
type OTPService struct {
	otpRepo  OTPStore
	userRepo OTPUserStore
	mailer   CodeSender

	codeLength int
	validity   time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo OTPStore, userRepo OTPUserStore, mailer CodeSender, codeLength, validityMinutes int) *OTPService {
	return &OTPService{
		otpRepo:    otpRepo,
		userRepo:   userRepo,
		mailer:     mailer,
		codeLength: codeLength,
		validity:   time.Duration(validityMinutes) * time.Minute,
	}
}

// GenerateCode produces a random numeric code of the configured length.
// Leading zeros are kept, so "012345" is a valid code.
func (s *OTPService) GenerateCode() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(s.codeLength)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", s.codeLength, n), nil
}

// Issue generates and persists a fresh code for the user and purpose.
// Any previously active code for the pair is retired in the same
// transaction, so at most one code is ever redeemable.
func (s *OTPService) Issue(userID uuid.UUID, purpose model.OTPPurpose) (*model.OTPCode, error) {
	count, err := s.otpRepo.CountRecent(userID, purpose, time.Now().Add(-otpRateWindow))
	if err != nil {
		return nil, err
	}
	if count >= otpRateLimit {
		return nil, ErrTooManyRequests
	}

	code, err := s.GenerateCode()
	if err != nil {
		return nil, err
	}

	otp := &model.OTPCode{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		Status:    model.OTPStatusActive,
		ExpiresAt: time.Now().Add(s.validity),
	}
	if err := s.otpRepo.Issue(otp); err != nil {
		return nil, err
	}
	return otp, nil
}

// Request issues a code for the account behind the email and mails it.
// The response is identical whether or not the email is registered, so
// the endpoint cannot be used to probe for accounts. Mail delivery
// failure is logged but does not fail the request; the code is already
// issued and a resend will supersede it.
func (s *OTPService) Request(email string, purpose model.OTPPurpose) (*model.OTPSentResponse, error) {
	resp := &model.OTPSentResponse{
		Message:   "If the email is registered, a verification code has been sent",
		ExpiresIn: int(s.validity.Seconds()),
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, err
	}

	otp, err := s.Issue(user.ID, purpose)
	if err != nil {
		// The rate limit must not leak which emails are registered:
		// a capped account answers exactly like an unknown one.
		if errors.Is(err, ErrTooManyRequests) {
			log.Printf("⚠️  OTP rate limit reached for user %s (%s), code not issued", user.ID, purpose)
			return resp, nil
		}
		return nil, err
	}

	validityMinutes := int(s.validity.Minutes())
	if err := s.mailer.SendOTP(user.Email, user.FirstName, otp.Code, validityMinutes, string(purpose)); err != nil {
		log.Printf("⚠️  Failed to deliver OTP email to %s: %v", user.Email, err)
	}

	return resp, nil
}

// Verify reports whether the code would currently be accepted, without
// consuming it. A wrong email, wrong code, expired code and retired code
// all produce the same negative answer.
func (s *OTPService) Verify(email, code string, purpose model.OTPPurpose) (bool, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	_, err = s.otpRepo.FindConsumable(user.ID, code, purpose)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ResetPassword redeems a password reset code and sets the new password.
// The new hash is persisted before the code is consumed, so a crash
// between the two steps leaves a usable password and a still-active code
// rather than a locked-out user. After consuming, every remaining active
// reset code for the user is retired. Every failure mode returns the
// same ErrInvalidCredential.
func (s *OTPService) ResetPassword(email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredential
		}
		return err
	}

	otp, err := s.otpRepo.FindConsumable(user.ID, code, model.OTPPurposePasswordReset)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredential
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, string(hashed)); err != nil {
		return err
	}

	if err := s.otpRepo.Consume(otp.ID); err != nil {
		return err
	}

	// Close out any stray active code for the purpose; normally the issue
	// transaction already left at most one.
	if err := s.otpRepo.InvalidateAll(user.ID, model.OTPPurposePasswordReset); err != nil {
		return err
	}

	log.Printf("✅ Password reset completed for user %s", user.ID)
	return nil
}

// Invalidate retires every active code for the user and purpose
func (s *OTPService) Invalidate(userID uuid.UUID, purpose model.OTPPurpose) error {
	return s.otpRepo.InvalidateAll(userID, purpose)
}
