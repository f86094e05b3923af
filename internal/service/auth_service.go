package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/pkg/auth"
	"github.com/helplink/api/pkg/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthUserStore is the user persistence surface the auth flows need
type AuthUserStore interface {
	Create(user *model.User) error
	FindByID(id uuid.UUID) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	UpdateLastLogin(userID uuid.UUID) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	UpdateFields(userID uuid.UUID, updates map[string]interface{}) error
}

// RegisterFiles carries the optional image uploads of the register form
type RegisterFiles struct {
	ProfileImage       *multipart.FileHeader
	VerificationSelfie *multipart.FileHeader
	ValidID            *multipart.FileHeader
}

// AuthService handles registration, login and profile management
type AuthService struct {
	userRepo  AuthUserStore
	jwt       *auth.JWTManager
	storage   storage.Storage
	blacklist *auth.TokenBlacklist
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo AuthUserStore, jwt *auth.JWTManager, store storage.Storage, blacklist *auth.TokenBlacklist) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwt:       jwt,
		storage:   store,
		blacklist: blacklist,
	}
}

// NormalizeEmail lowercases and trims an email so lookups are consistent
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account. Identity images are uploaded to
// object storage and only their keys are stored; new accounts start
// under review until an admin assigns a badge.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest, files RegisterFiles) (*model.User, error) {
	email := NormalizeEmail(req.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	accountType := model.AccountTypeBeneficiary
	if req.AccountType != "" {
		accountType = model.AccountType(req.AccountType)
	}

	user := &model.User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		Password:    string(hashed),
		Address:     req.Address,
		Age:         req.Age,
		Phone:       req.Phone,
		AccountType: accountType,
		Badge:       model.BadgeUnderReview,
	}

	// A disallowed file type is skipped, not fatal; the account is still
	// created and the documents can be resubmitted later.
	if files.ProfileImage != nil {
		if !isAllowedImage(files.ProfileImage.Filename) {
			log.Printf("⚠️  Skipping profile image %s: file type not allowed", files.ProfileImage.Filename)
		} else {
			key, err := s.uploadImage(ctx, files.ProfileImage, "profiles")
			if err != nil {
				return nil, err
			}
			user.ProfileImage = key
		}
	}
	if files.VerificationSelfie != nil {
		if !isAllowedImage(files.VerificationSelfie.Filename) {
			log.Printf("⚠️  Skipping verification selfie %s: file type not allowed", files.VerificationSelfie.Filename)
		} else {
			key, err := s.uploadImage(ctx, files.VerificationSelfie, "credentials")
			if err != nil {
				return nil, err
			}
			user.VerificationSelfie = key
		}
	}
	if files.ValidID != nil {
		if !isAllowedImage(files.ValidID.Filename) {
			log.Printf("⚠️  Skipping valid ID %s: file type not allowed", files.ValidID.Filename)
		} else {
			key, err := s.uploadImage(ctx, files.ValidID, "credentials")
			if err != nil {
				return nil, err
			}
			user.ValidID = key
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("✅ New user registered: %s (%s)", user.Email, user.AccountType)
	return user, nil
}

// Login authenticates a user and returns a signed JWT. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(req model.LoginRequest) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredential
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredential
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		log.Printf("⚠️  Failed to update last login for %s: %v", user.ID, err)
	}

	return token, user, nil
}

// Logout revokes the token for the remainder of its lifetime
func (s *AuthService) Logout(ctx context.Context, token string, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.blacklist.Add(ctx, token, ttl)
}

// GetProfile returns the user behind the authenticated token
func (s *AuthService) GetProfile(userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's profile. A new
// profile image replaces the old one in storage.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest, profileImage *multipart.FileHeader) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if profileImage != nil {
		if !isAllowedImage(profileImage.Filename) {
			return nil, ErrInvalidInput
		}
		key, err := s.uploadImage(ctx, profileImage, "profiles")
		if err != nil {
			return nil, err
		}
		if user.ProfileImage != "" {
			if err := s.storage.Delete(ctx, user.ProfileImage); err != nil {
				log.Printf("⚠️  Failed to delete old profile image %s: %v", user.ProfileImage, err)
			}
		}
		updates["profile_image"] = key
	}

	if err := s.userRepo.UpdateFields(userID, updates); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// UpdateCredentials replaces the caller's identity documents and puts the
// account back under review until an admin verifies the new documents.
func (s *AuthService) UpdateCredentials(ctx context.Context, userID uuid.UUID, selfie, validID *multipart.FileHeader) (*model.User, error) {
	if selfie == nil && validID == nil {
		return nil, ErrInvalidInput
	}
	if selfie != nil && !isAllowedImage(selfie.Filename) {
		return nil, ErrInvalidInput
	}
	if validID != nil && !isAllowedImage(validID.Filename) {
		return nil, ErrInvalidInput
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"badge": model.BadgeUnderReview}
	if selfie != nil {
		key, err := s.uploadImage(ctx, selfie, "credentials")
		if err != nil {
			return nil, err
		}
		if user.VerificationSelfie != "" {
			if err := s.storage.Delete(ctx, user.VerificationSelfie); err != nil {
				log.Printf("⚠️  Failed to delete old verification selfie %s: %v", user.VerificationSelfie, err)
			}
		}
		updates["verification_selfie"] = key
	}
	if validID != nil {
		key, err := s.uploadImage(ctx, validID, "credentials")
		if err != nil {
			return nil, err
		}
		if user.ValidID != "" {
			if err := s.storage.Delete(ctx, user.ValidID); err != nil {
				log.Printf("⚠️  Failed to delete old valid ID %s: %v", user.ValidID, err)
			}
		}
		updates["valid_id"] = key
	}

	if err := s.userRepo.UpdateFields(userID, updates); err != nil {
		return nil, err
	}

	log.Printf("✅ Credentials resubmitted by %s, badge reset to under_review", userID)
	return s.GetProfile(userID)
}

// ChangePassword verifies the current password and sets a new one
func (s *AuthService) ChangePassword(userID uuid.UUID, req model.ChangePasswordRequest) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredential
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(userID, string(hashed))
}

func (s *AuthService) uploadImage(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	result, err := s.storage.Upload(ctx, file, header, folder)
	if err != nil {
		return "", err
	}
	return result.Key, nil
}
