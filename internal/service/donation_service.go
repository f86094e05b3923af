package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/pkg/storage"
	"gorm.io/gorm"
)

// DonationStore is the persistence surface for donations and proofs
type DonationStore interface {
	Create(donation *model.Donation) error
	FindByID(id uuid.UUID) (*model.Donation, error)
	List(filters model.DonationFilters) ([]model.Donation, int64, error)
	UpdateFields(donationID uuid.UUID, updates map[string]interface{}) error
	UpdateStatus(donationID uuid.UUID, status model.DonationStatus) error
	AddProof(proof *model.DonationProof) error
}

// DonationService handles donation pledges against posts
type DonationService struct {
	donationRepo DonationStore
	postRepo     PostStore
	storage      storage.Storage
}

// NewDonationService creates a new donation service
func NewDonationService(donationRepo DonationStore, postRepo PostStore, store storage.Storage) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		postRepo:     postRepo,
		storage:      store,
	}
}

// Donate pledges a donation against a post. Pledges start pending and
// are advanced by admins as they are verified.
func (s *DonationService) Donate(ctx context.Context, postID, userID uuid.UUID, req model.DonateRequest) (*model.DonationResponse, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	donation := &model.Donation{
		PostID:  postID,
		UserID:  userID,
		Amount:  req.Amount,
		Message: req.Message,
		Status:  model.DonationStatusPending,
	}
	if err := s.donationRepo.Create(donation); err != nil {
		return nil, err
	}

	log.Printf("✅ Donation pledged: %.2f on post %s by %s", req.Amount, postID, userID)
	return s.Get(ctx, donation.ID)
}

// Get returns a donation expanded with donor info and proof links
func (s *DonationService) Get(ctx context.Context, donationID uuid.UUID) (*model.DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildResponse(ctx, donation), nil
}

// List returns donations matching the filters
func (s *DonationService) List(ctx context.Context, filters model.DonationFilters) (*model.DonationListResponse, error) {
	donations, total, err := s.donationRepo.List(filters)
	if err != nil {
		return nil, err
	}

	items := make([]model.DonationResponse, 0, len(donations))
	for i := range donations {
		items = append(items, *s.buildResponse(ctx, &donations[i]))
	}

	return &model.DonationListResponse{
		Donations: items,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}

// Update edits a pledge. Only the donor may edit, and only while the
// pledge is still pending review.
func (s *DonationService) Update(ctx context.Context, donationID uuid.UUID, actor *model.User, req model.UpdateDonationRequest) (*model.DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if donation.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if donation.Status != model.DonationStatusPending && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Message != nil {
		updates["message"] = *req.Message
	}

	if err := s.donationRepo.UpdateFields(donationID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, donationID)
}

// AddProof attaches an uploaded proof image to a pledge. Only the donor
// may submit proofs.
func (s *DonationService) AddProof(ctx context.Context, donationID, userID uuid.UUID, header *multipart.FileHeader) (*model.DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if donation.UserID != userID {
		return nil, ErrForbidden
	}
	if !isAllowedImage(header.Filename) {
		return nil, ErrInvalidInput
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	result, err := s.storage.Upload(ctx, file, header, "donations/proofs")
	if err != nil {
		return nil, err
	}

	if err := s.donationRepo.AddProof(&model.DonationProof{
		DonationID: donationID,
		ImageURL:   result.Key,
	}); err != nil {
		return nil, err
	}
	return s.Get(ctx, donationID)
}

func (s *DonationService) buildResponse(ctx context.Context, donation *model.Donation) *model.DonationResponse {
	keys := make([]string, 0, len(donation.Proofs))
	for _, proof := range donation.Proofs {
		keys = append(keys, proof.ImageURL)
	}

	return &model.DonationResponse{
		Donation:       *donation,
		DonorFirstName: donation.User.FirstName,
		DonorLastName:  donation.User.LastName,
		PostTitle:      donation.Post.Title,
		Proofs:         presignAll(ctx, s.storage, keys, fileURLExpiry),
	}
}
