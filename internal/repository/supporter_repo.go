package repository

import (
	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"gorm.io/gorm"
)

// SupporterRepository handles database operations for supporters and proofs
type SupporterRepository struct {
	db *gorm.DB
}

func NewSupporterRepository(db *gorm.DB) *SupporterRepository {
	return &SupporterRepository{db: db}
}

// Create inserts a new supporter record
func (r *SupporterRepository) Create(supporter *model.Supporter) error {
	return r.db.Create(supporter).Error
}

// FindByID loads a supporter with user, post and proofs
func (r *SupporterRepository) FindByID(id uuid.UUID) (*model.Supporter, error) {
	var supporter model.Supporter
	err := r.db.
		Preload("User").
		Preload("Post").
		Preload("Proofs").
		Where("id = ?", id).
		First(&supporter).Error
	if err != nil {
		return nil, err
	}
	return &supporter, nil
}

// List returns supporters matching the filters, newest first, plus a total count
func (r *SupporterRepository) List(filters model.SupporterFilters) ([]model.Supporter, int64, error) {
	q := r.db.Model(&model.Supporter{})
	if filters.PostID != nil {
		q = q.Where("post_id = ?", *filters.PostID)
	}
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var supporters []model.Supporter
	err := q.
		Preload("User").
		Preload("Post").
		Preload("Proofs").
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&supporters).Error
	return supporters, total, err
}

// UpdateFields applies a partial update to a supporter row
func (r *SupporterRepository) UpdateFields(supporterID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&model.Supporter{}).Where("id = ?", supporterID).Updates(updates).Error
}

// AddProof attaches a proof image to a supporter record
func (r *SupporterRepository) AddProof(proof *model.SupporterProof) error {
	return r.db.Create(proof).Error
}
