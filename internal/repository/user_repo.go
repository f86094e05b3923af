package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by UUID
func (r *UserRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email (callers normalize the email first)
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin stamps the user's last successful login
func (r *UserRepository) UpdateLastLogin(userID uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", now).Error
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

// UpdateFields applies a partial update to a user row
func (r *UserRepository) UpdateFields(userID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}

// List returns users with optional account type / badge filters plus a total count
func (r *UserRepository) List(accountType model.AccountType, badge model.Badge, limit, offset int) ([]model.User, int64, error) {
	q := r.db.Model(&model.User{})
	if accountType != "" {
		q = q.Where("account_type = ?", accountType)
	}
	if badge != "" {
		q = q.Where("badge = ?", badge)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

// ListVerificationRequests returns users awaiting badge review that have
// submitted at least one credential image
func (r *UserRepository) ListVerificationRequests(limit, offset int) ([]model.User, int64, error) {
	q := r.db.Model(&model.User{}).
		Where("badge = ? AND (verification_selfie <> '' OR valid_id <> '')", model.BadgeUnderReview)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}
