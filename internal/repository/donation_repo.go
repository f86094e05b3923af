package repository

import (
	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"gorm.io/gorm"
)

// DonationRepository handles database operations for donations and proofs
type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create inserts a new donation pledge
func (r *DonationRepository) Create(donation *model.Donation) error {
	return r.db.Create(donation).Error
}

// FindByID loads a donation with donor, post and proofs
func (r *DonationRepository) FindByID(id uuid.UUID) (*model.Donation, error) {
	var donation model.Donation
	err := r.db.
		Preload("User").
		Preload("Post").
		Preload("Proofs").
		Where("id = ?", id).
		First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// List returns donations matching the filters, newest first, plus a total count
func (r *DonationRepository) List(filters model.DonationFilters) ([]model.Donation, int64, error) {
	q := r.db.Model(&model.Donation{})
	if filters.PostID != nil {
		q = q.Where("post_id = ?", *filters.PostID)
	}
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []model.Donation
	err := q.
		Preload("User").
		Preload("Post").
		Preload("Proofs").
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&donations).Error
	return donations, total, err
}

// UpdateFields applies a partial update to a donation row
func (r *DonationRepository) UpdateFields(donationID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&model.Donation{}).Where("id = ?", donationID).Updates(updates).Error
}

// UpdateStatus changes a donation's verification state
func (r *DonationRepository) UpdateStatus(donationID uuid.UUID, status model.DonationStatus) error {
	return r.db.Model(&model.Donation{}).
		Where("id = ?", donationID).
		Update("status", status).Error
}

// AddProof attaches a proof image to a donation
func (r *DonationRepository) AddProof(proof *model.DonationProof) error {
	return r.db.Create(proof).Error
}
