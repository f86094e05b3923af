package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountType defines the role a user plays on the platform
type AccountType string

const (
	AccountTypeBeneficiary  AccountType = "beneficiary"
	AccountTypeDonor        AccountType = "donor"
	AccountTypeVolunteer    AccountType = "volunteer"
	AccountTypeOrganization AccountType = "verified_organization"
	AccountTypeAdmin        AccountType = "admin"
)

// Badge reflects the outcome of identity verification review
type Badge string

const (
	BadgeUnderReview Badge = "under_review"
	BadgeVerified    Badge = "verified"
	BadgeRejected    Badge = "rejected"
)

// User represents a registered HelpLink user
type User struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName   string      `json:"first_name" gorm:"size:100;not null"`
	LastName    string      `json:"last_name" gorm:"size:100;not null"`
	Email       string      `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password    string      `json:"-" gorm:"size:255;not null"`
	Address     string      `json:"address" gorm:"size:500;default:''"`
	Age         *int        `json:"age"`
	Phone       string      `json:"number" gorm:"size:30;default:''"`
	AccountType AccountType `json:"account_type" gorm:"size:30;default:'beneficiary'"`
	Badge       Badge       `json:"badge" gorm:"size:20;default:'under_review'"`

	// Object keys in storage, not URLs. Presigned on the way out.
	ProfileImage       string `json:"profile_image" gorm:"size:500;default:''"`
	VerificationSelfie string `json:"-" gorm:"size:500;default:''"`
	ValidID            string `json:"-" gorm:"size:500;default:''"`

	LastLogin *time.Time     `json:"last_logon"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin checks if the user can access moderation endpoints
func (u *User) IsAdmin() bool {
	return u.AccountType == AccountTypeAdmin
}

// UserResponse is the safe version of User for API responses
type UserResponse struct {
	ID           uuid.UUID   `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	Address      string      `json:"address"`
	Age          *int        `json:"age"`
	Phone        string      `json:"number"`
	AccountType  AccountType `json:"account_type"`
	Badge        Badge       `json:"badge"`
	ProfileImage string      `json:"profile_image"` // presigned URL, may be empty
	LastLogin    *time.Time  `json:"last_logon"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ToResponse converts User to safe UserResponse. The profile image field
// still holds the raw object key; callers presign it before returning.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Address:      u.Address,
		Age:          u.Age,
		Phone:        u.Phone,
		AccountType:  u.AccountType,
		Badge:        u.Badge,
		ProfileImage: u.ProfileImage,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
	}
}
