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

// SupporterStore is the persistence surface for supporters and proofs
type SupporterStore interface {
	Create(supporter *model.Supporter) error
	FindByID(id uuid.UUID) (*model.Supporter, error)
	List(filters model.SupporterFilters) ([]model.Supporter, int64, error)
	UpdateFields(supporterID uuid.UUID, updates map[string]interface{}) error
	AddProof(proof *model.SupporterProof) error
}

// SupporterService handles non-monetary support pledged against posts
type SupporterService struct {
	supporterRepo SupporterStore
	postRepo      PostStore
	storage       storage.Storage
}

// NewSupporterService creates a new supporter service
func NewSupporterService(supporterRepo SupporterStore, postRepo PostStore, store storage.Storage) *SupporterService {
	return &SupporterService{
		supporterRepo: supporterRepo,
		postRepo:      postRepo,
		storage:       store,
	}
}

// Support records a user backing a post
func (s *SupporterService) Support(ctx context.Context, postID, userID uuid.UUID, req model.SupportRequest) (*model.SupporterResponse, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	supportType := model.SupportTypeShare
	if req.Type != "" {
		supportType = model.SupportType(req.Type)
	}

	supporter := &model.Supporter{
		PostID:  postID,
		UserID:  userID,
		Type:    supportType,
		Message: req.Message,
	}
	if err := s.supporterRepo.Create(supporter); err != nil {
		return nil, err
	}

	log.Printf("✅ Support pledged (%s) on post %s by %s", supportType, postID, userID)
	return s.Get(ctx, supporter.ID)
}

// Get returns a supporter record expanded with user info and proof links
func (s *SupporterService) Get(ctx context.Context, supporterID uuid.UUID) (*model.SupporterResponse, error) {
	supporter, err := s.supporterRepo.FindByID(supporterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildResponse(ctx, supporter), nil
}

// List returns supporter records matching the filters
func (s *SupporterService) List(ctx context.Context, filters model.SupporterFilters) (*model.SupporterListResponse, error) {
	supporters, total, err := s.supporterRepo.List(filters)
	if err != nil {
		return nil, err
	}

	items := make([]model.SupporterResponse, 0, len(supporters))
	for i := range supporters {
		items = append(items, *s.buildResponse(ctx, &supporters[i]))
	}

	return &model.SupporterListResponse{
		Supporters: items,
		Total:      total,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	}, nil
}

// Update edits a support pledge. Only its owner or an admin may edit.
func (s *SupporterService) Update(ctx context.Context, supporterID uuid.UUID, actor *model.User, req model.UpdateSupporterRequest) (*model.SupporterResponse, error) {
	supporter, err := s.supporterRepo.FindByID(supporterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if supporter.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Message != nil {
		updates["message"] = *req.Message
	}

	if err := s.supporterRepo.UpdateFields(supporterID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, supporterID)
}

// AddProof attaches an uploaded proof image to a support pledge
func (s *SupporterService) AddProof(ctx context.Context, supporterID, userID uuid.UUID, header *multipart.FileHeader) (*model.SupporterResponse, error) {
	supporter, err := s.supporterRepo.FindByID(supporterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if supporter.UserID != userID {
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

	result, err := s.storage.Upload(ctx, file, header, "supporters/proofs")
	if err != nil {
		return nil, err
	}

	if err := s.supporterRepo.AddProof(&model.SupporterProof{
		SupporterID: supporterID,
		ImageURL:    result.Key,
	}); err != nil {
		return nil, err
	}
	return s.Get(ctx, supporterID)
}

func (s *SupporterService) buildResponse(ctx context.Context, supporter *model.Supporter) *model.SupporterResponse {
	keys := make([]string, 0, len(supporter.Proofs))
	for _, proof := range supporter.Proofs {
		keys = append(keys, proof.ImageURL)
	}

	return &model.SupporterResponse{
		Supporter:          *supporter,
		SupporterFirstName: supporter.User.FirstName,
		SupporterLastName:  supporter.User.LastName,
		PostTitle:          supporter.Post.Title,
		Proofs:             presignAll(ctx, s.storage, keys, fileURLExpiry),
	}
}
