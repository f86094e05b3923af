package service

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(userRepo *MockUserStore, store *MockStorage) *AuthService {
	jwt := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(userRepo, jwt, store, nil)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success normalizes email and hashes password", func(t *testing.T) {
		userRepo := new(MockUserStore)
		svc := newAuthService(userRepo, new(MockStorage))

		userRepo.On("FindByEmail", "kay@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "kay@example.com" &&
				u.Password != "secret123" &&
				u.Badge == model.BadgeUnderReview &&
				u.AccountType == model.AccountTypeDonor
		})).Return(nil)

		user, err := svc.Register(context.Background(), model.RegisterRequest{
			FirstName:   "Kay",
			LastName:    "Reyes",
			Email:       "  Kay@Example.COM ",
			Password:    "secret123",
			AccountType: "donor",
		}, RegisterFiles{})

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserStore)
		svc := newAuthService(userRepo, new(MockStorage))

		userRepo.On("FindByEmail", "taken@example.com").Return(&model.User{ID: uuid.New()}, nil)

		_, err := svc.Register(context.Background(), model.RegisterRequest{
			FirstName: "Kay",
			LastName:  "Reyes",
			Email:     "taken@example.com",
			Password:  "secret123",
		}, RegisterFiles{})

		assert.ErrorIs(t, err, ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("disallowed upload types are skipped, not stored", func(t *testing.T) {
		userRepo := new(MockUserStore)
		store := new(MockStorage)
		svc := newAuthService(userRepo, store)

		userRepo.On("FindByEmail", "kay@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.MatchedBy(func(u *model.User) bool {
			return u.ProfileImage == "" && u.VerificationSelfie == ""
		})).Return(nil)

		user, err := svc.Register(context.Background(), model.RegisterRequest{
			FirstName: "Kay",
			LastName:  "Reyes",
			Email:     "kay@example.com",
			Password:  "secret123",
		}, RegisterFiles{
			ProfileImage:       &multipart.FileHeader{Filename: "payload.exe"},
			VerificationSelfie: &multipart.FileHeader{Filename: "selfie.svg"},
		})

		require.NoError(t, err)
		assert.Empty(t, user.ProfileImage)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("account type defaults to beneficiary", func(t *testing.T) {
		userRepo := new(MockUserStore)
		svc := newAuthService(userRepo, new(MockStorage))

		userRepo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.MatchedBy(func(u *model.User) bool {
			return u.AccountType == model.AccountTypeBeneficiary
		})).Return(nil)

		_, err := svc.Register(context.Background(), model.RegisterRequest{
			FirstName: "Kay",
			LastName:  "Reyes",
			Email:     "new@example.com",
			Password:  "secret123",
		}, RegisterFiles{})

		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	user := &model.User{
		ID:       uuid.New(),
		Email:    "kay@example.com",
		Password: "", // set per test
	}

	t.Run("success returns token and stamps last login", func(t *testing.T) {
		userRepo := new(MockUserStore)
		svc := newAuthService(userRepo, new(MockStorage))

		u := *user
		u.Password = hashOf(t, "secret123")
		userRepo.On("FindByEmail", u.Email).Return(&u, nil)
		userRepo.On("UpdateLastLogin", u.ID).Return(nil)

		token, got, err := svc.Login(model.LoginRequest{Email: u.Email, Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, u.ID, got.ID)
		userRepo.AssertExpectations(t)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		userRepo := new(MockUserStore)
		svc := newAuthService(userRepo, new(MockStorage))

		u := *user
		u.Password = hashOf(t, "secret123")
		userRepo.On("FindByEmail", u.Email).Return(&u, nil)
		userRepo.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, errWrongPass := svc.Login(model.LoginRequest{Email: u.Email, Password: "wrong"})
		_, _, errNoUser := svc.Login(model.LoginRequest{Email: "ghost@example.com", Password: "secret123"})

		assert.ErrorIs(t, errWrongPass, ErrInvalidCredential)
		assert.ErrorIs(t, errNoUser, ErrInvalidCredential)
		assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	userID := uuid.New()

	t.Run("wrong current password", func(t *testing.T) {
		userRepo := new(MockUserStore)
		svc := newAuthService(userRepo, new(MockStorage))

		userRepo.On("FindByID", userID).Return(&model.User{
			ID:       userID,
			Password: hashOf(t, "current"),
		}, nil)

		err := svc.ChangePassword(userID, model.ChangePasswordRequest{
			OldPassword: "not-current",
			NewPassword: "new-secret",
		})
		assert.ErrorIs(t, err, ErrInvalidCredential)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	})

	t.Run("success stores a new hash", func(t *testing.T) {
		userRepo := new(MockUserStore)
		svc := newAuthService(userRepo, new(MockStorage))

		userRepo.On("FindByID", userID).Return(&model.User{
			ID:       userID,
			Password: hashOf(t, "current"),
		}, nil)
		userRepo.On("UpdatePassword", userID, mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-secret")) == nil
		})).Return(nil)

		err := svc.ChangePassword(userID, model.ChangePasswordRequest{
			OldPassword: "current",
			NewPassword: "new-secret",
		})
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}
