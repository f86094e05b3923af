package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOTPService(otpRepo *MockOTPStore, userRepo *MockUserStore, mailer *MockCodeSender) *OTPService {
	return NewOTPService(otpRepo, userRepo, mailer, 6, 3)
}

func TestOTPService_GenerateCode(t *testing.T) {
	svc := newOTPService(new(MockOTPStore), new(MockUserStore), new(MockCodeSender))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := svc.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
		}
		seen[code] = true
	}
	// 50 draws from a million values colliding down to a handful would
	// mean a broken generator
	assert.Greater(t, len(seen), 10)
}

func TestOTPService_Issue(t *testing.T) {
	otpRepo := new(MockOTPStore)
	svc := newOTPService(otpRepo, new(MockUserStore), new(MockCodeSender))
	userID := uuid.New()

	otpRepo.On("CountRecent", userID, model.OTPPurposePasswordReset, mock.Anything).Return(int64(0), nil)
	otpRepo.On("Issue", mock.MatchedBy(func(otp *model.OTPCode) bool {
		return otp.UserID == userID &&
			otp.Purpose == model.OTPPurposePasswordReset &&
			otp.Status == model.OTPStatusActive &&
			otp.UsedAt == nil &&
			len(otp.Code) == 6
	})).Return(nil)

	otp, err := svc.Issue(userID, model.OTPPurposePasswordReset)
	require.NoError(t, err)

	// Validity window is 3 minutes from now
	remaining := time.Until(otp.ExpiresAt)
	assert.InDelta(t, (3 * time.Minute).Seconds(), remaining.Seconds(), 5)
	otpRepo.AssertExpectations(t)
}

func TestOTPService_Issue_RateLimited(t *testing.T) {
	otpRepo := new(MockOTPStore)
	svc := newOTPService(otpRepo, new(MockUserStore), new(MockCodeSender))
	userID := uuid.New()

	otpRepo.On("CountRecent", userID, model.OTPPurposePasswordReset, mock.Anything).Return(int64(5), nil)

	_, err := svc.Issue(userID, model.OTPPurposePasswordReset)
	assert.ErrorIs(t, err, ErrTooManyRequests)
	otpRepo.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestOTPService_Request_UnknownEmail(t *testing.T) {
	otpRepo := new(MockOTPStore)
	userRepo := new(MockUserStore)
	mailer := new(MockCodeSender)
	svc := newOTPService(otpRepo, userRepo, mailer)

	userRepo.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Request("ghost@example.com", model.OTPPurposePasswordReset)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)

	// No code issued, no mail sent, nothing that would reveal the email
	// is unregistered
	otpRepo.AssertNotCalled(t, "Issue", mock.Anything)
	mailer.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOTPService_Request_ResponseIndistinguishable(t *testing.T) {
	otpRepo := new(MockOTPStore)
	userRepo := new(MockUserStore)
	mailer := new(MockCodeSender)
	svc := newOTPService(otpRepo, userRepo, mailer)

	user := &model.User{ID: uuid.New(), Email: "known@example.com", FirstName: "Kay"}
	userRepo.On("FindByEmail", "known@example.com").Return(user, nil)
	userRepo.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	otpRepo.On("CountRecent", user.ID, model.OTPPurposePasswordReset, mock.Anything).Return(int64(0), nil)
	otpRepo.On("Issue", mock.Anything).Return(nil)
	mailer.On("SendOTP", user.Email, "Kay", mock.Anything, 3, "password_reset").Return(nil)

	known, err := svc.Request("known@example.com", model.OTPPurposePasswordReset)
	require.NoError(t, err)
	unknown, err := svc.Request("ghost@example.com", model.OTPPurposePasswordReset)
	require.NoError(t, err)

	assert.Equal(t, known, unknown)
}

func TestOTPService_Request_RateLimitedIndistinguishable(t *testing.T) {
	otpRepo := new(MockOTPStore)
	userRepo := new(MockUserStore)
	mailer := new(MockCodeSender)
	svc := newOTPService(otpRepo, userRepo, mailer)

	user := &model.User{ID: uuid.New(), Email: "capped@example.com", FirstName: "Kay"}
	userRepo.On("FindByEmail", user.Email).Return(user, nil)
	userRepo.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	otpRepo.On("CountRecent", user.ID, model.OTPPurposePasswordReset, mock.Anything).Return(int64(5), nil)

	capped, err := svc.Request(user.Email, model.OTPPurposePasswordReset)
	require.NoError(t, err)
	unknown, err := svc.Request("ghost@example.com", model.OTPPurposePasswordReset)
	require.NoError(t, err)

	// A rate-limited account answers exactly like an unregistered one, so
	// hammering the endpoint reveals nothing
	assert.Equal(t, capped, unknown)
	otpRepo.AssertNotCalled(t, "Issue", mock.Anything)
	mailer.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOTPService_Request_MailFailureNonFatal(t *testing.T) {
	otpRepo := new(MockOTPStore)
	userRepo := new(MockUserStore)
	mailer := new(MockCodeSender)
	svc := newOTPService(otpRepo, userRepo, mailer)

	user := &model.User{ID: uuid.New(), Email: "kay@example.com", FirstName: "Kay"}
	userRepo.On("FindByEmail", user.Email).Return(user, nil)
	otpRepo.On("CountRecent", user.ID, model.OTPPurposePasswordReset, mock.Anything).Return(int64(0), nil)
	otpRepo.On("Issue", mock.Anything).Return(nil)
	mailer.On("SendOTP", user.Email, "Kay", mock.Anything, 3, "password_reset").
		Return(assert.AnError)

	// The code is already issued; delivery failure must not fail the request
	resp, err := svc.Request(user.Email, model.OTPPurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, 180, resp.ExpiresIn)
}

func TestOTPService_Verify(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "kay@example.com"}

	t.Run("valid code", func(t *testing.T) {
		otpRepo := new(MockOTPStore)
		userRepo := new(MockUserStore)
		svc := newOTPService(otpRepo, userRepo, new(MockCodeSender))

		userRepo.On("FindByEmail", user.Email).Return(user, nil)
		otpRepo.On("FindConsumable", user.ID, "123456", model.OTPPurposePasswordReset).
			Return(&model.OTPCode{ID: uuid.New(), Code: "123456"}, nil)

		valid, err := svc.Verify(user.Email, "123456", model.OTPPurposePasswordReset)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("wrong or stale code", func(t *testing.T) {
		otpRepo := new(MockOTPStore)
		userRepo := new(MockUserStore)
		svc := newOTPService(otpRepo, userRepo, new(MockCodeSender))

		userRepo.On("FindByEmail", user.Email).Return(user, nil)
		otpRepo.On("FindConsumable", user.ID, "999999", model.OTPPurposePasswordReset).
			Return(nil, gorm.ErrRecordNotFound)

		valid, err := svc.Verify(user.Email, "999999", model.OTPPurposePasswordReset)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserStore)
		svc := newOTPService(new(MockOTPStore), userRepo, new(MockCodeSender))

		userRepo.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		valid, err := svc.Verify("ghost@example.com", "123456", model.OTPPurposePasswordReset)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("verify does not consume", func(t *testing.T) {
		otpRepo := new(MockOTPStore)
		userRepo := new(MockUserStore)
		svc := newOTPService(otpRepo, userRepo, new(MockCodeSender))

		userRepo.On("FindByEmail", user.Email).Return(user, nil)
		otpRepo.On("FindConsumable", user.ID, "123456", model.OTPPurposePasswordReset).
			Return(&model.OTPCode{ID: uuid.New()}, nil)

		_, err := svc.Verify(user.Email, "123456", model.OTPPurposePasswordReset)
		require.NoError(t, err)
		otpRepo.AssertNotCalled(t, "Consume", mock.Anything)
	})
}

func TestOTPService_ResetPassword(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "kay@example.com"}
	otp := &model.OTPCode{ID: uuid.New(), UserID: user.ID, Code: "123456"}

	t.Run("success persists, consumes, then retires stray codes", func(t *testing.T) {
		otpRepo := new(MockOTPStore)
		userRepo := new(MockUserStore)
		svc := newOTPService(otpRepo, userRepo, new(MockCodeSender))

		var order []string
		userRepo.On("FindByEmail", user.Email).Return(user, nil)
		otpRepo.On("FindConsumable", user.ID, "123456", model.OTPPurposePasswordReset).Return(otp, nil)
		userRepo.On("UpdatePassword", user.ID, mock.Anything).
			Run(func(args mock.Arguments) { order = append(order, "password") }).
			Return(nil)
		otpRepo.On("Consume", otp.ID).
			Run(func(args mock.Arguments) { order = append(order, "consume") }).
			Return(nil)
		otpRepo.On("InvalidateAll", user.ID, model.OTPPurposePasswordReset).
			Run(func(args mock.Arguments) { order = append(order, "invalidate") }).
			Return(nil)

		err := svc.ResetPassword(user.Email, "123456", "new-secret")
		require.NoError(t, err)
		assert.Equal(t, []string{"password", "consume", "invalidate"}, order)
	})

	t.Run("wrong code and unknown email are indistinguishable", func(t *testing.T) {
		otpRepo := new(MockOTPStore)
		userRepo := new(MockUserStore)
		svc := newOTPService(otpRepo, userRepo, new(MockCodeSender))

		userRepo.On("FindByEmail", user.Email).Return(user, nil)
		userRepo.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
		otpRepo.On("FindConsumable", user.ID, "999999", model.OTPPurposePasswordReset).
			Return(nil, gorm.ErrRecordNotFound)

		errWrongCode := svc.ResetPassword(user.Email, "999999", "new-secret")
		errNoUser := svc.ResetPassword("ghost@example.com", "123456", "new-secret")

		assert.ErrorIs(t, errWrongCode, ErrInvalidCredential)
		assert.ErrorIs(t, errNoUser, ErrInvalidCredential)
		assert.Equal(t, errWrongCode.Error(), errNoUser.Error())
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		otpRepo := new(MockOTPStore)
		userRepo := new(MockUserStore)
		svc := newOTPService(otpRepo, userRepo, new(MockCodeSender))

		userRepo.On("FindByEmail", user.Email).Return(user, nil)
		otpRepo.On("FindConsumable", user.ID, "123456", model.OTPPurposePasswordReset).Return(otp, nil)
		userRepo.On("UpdatePassword", user.ID, mock.MatchedBy(func(hash string) bool {
			return hash != "new-secret" && len(hash) > 20
		})).Return(nil)
		otpRepo.On("Consume", otp.ID).Return(nil)
		otpRepo.On("InvalidateAll", user.ID, model.OTPPurposePasswordReset).Return(nil)

		require.NoError(t, svc.ResetPassword(user.Email, "123456", "new-secret"))
		userRepo.AssertExpectations(t)
	})
}

func TestOTPCode_IsConsumable(t *testing.T) {
	now := time.Now()

	t.Run("active unused unexpired", func(t *testing.T) {
		otp := model.OTPCode{
			Status:    model.OTPStatusActive,
			ExpiresAt: now.Add(time.Minute),
		}
		assert.True(t, otp.IsConsumable())
	})

	t.Run("used codes stay retired", func(t *testing.T) {
		used := now
		otp := model.OTPCode{
			Status:    model.OTPStatusInactive,
			UsedAt:    &used,
			ExpiresAt: now.Add(time.Minute),
		}
		assert.False(t, otp.IsConsumable())
	})

	t.Run("superseded but unused", func(t *testing.T) {
		otp := model.OTPCode{
			Status:    model.OTPStatusInactive,
			ExpiresAt: now.Add(time.Minute),
		}
		assert.False(t, otp.IsConsumable())
	})

	t.Run("the expiry instant itself counts as expired", func(t *testing.T) {
		otp := model.OTPCode{
			Status:    model.OTPStatusActive,
			ExpiresAt: now.Add(-time.Millisecond),
		}
		assert.False(t, otp.IsConsumable())
	})
}
