package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/pkg/storage"
)

// CredentialService serves time-limited links to identity documents.
// The bucket is private; these endpoints are the only way credentials
// leave storage.
type CredentialService struct {
	userRepo AuthUserStore
	storage  storage.Storage
}

// NewCredentialService creates a new credential service
func NewCredentialService(userRepo AuthUserStore, store storage.Storage) *CredentialService {
	return &CredentialService{userRepo: userRepo, storage: store}
}

// Credentials returns presigned links to a user's identity documents.
// Only the owner and admins may look; everyone else gets ErrForbidden
// regardless of whether the documents exist.
func (s *CredentialService) Credentials(ctx context.Context, requester *model.User, targetID uuid.UUID) (*model.CredentialsResponse, error) {
	if requester.ID != targetID && !requester.IsAdmin() {
		return nil, ErrForbidden
	}

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		return nil, ErrNotFound
	}

	creds := map[string]string{}
	if url := presign(ctx, s.storage, target.VerificationSelfie, credentialURLExpiry); url != "" {
		creds["verification_selfie"] = url
	}
	if url := presign(ctx, s.storage, target.ValidID, credentialURLExpiry); url != "" {
		creds["valid_id"] = url
	}
	if url := presign(ctx, s.storage, target.ProfileImage, credentialURLExpiry); url != "" {
		creds["profile_image"] = url
	}

	return &model.CredentialsResponse{Credentials: creds}, nil
}

// FileURL mints a short-lived download link for an object key
func (s *CredentialService) FileURL(ctx context.Context, key string) (*model.FileURLResponse, error) {
	if key == "" {
		return nil, ErrInvalidInput
	}
	url, err := s.storage.PresignedURL(ctx, key, fileURLExpiry)
	if err != nil {
		return nil, err
	}
	return &model.FileURLResponse{
		URL:       url,
		ExpiresIn: int(fileURLExpiry.Seconds()),
	}, nil
}
