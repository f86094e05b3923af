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

// PostStore is the persistence surface for posts, media and reactions
type PostStore interface {
	Create(post *model.Post) error
	FindByID(id uuid.UUID) (*model.Post, error)
	List(filters model.PostFilters) ([]model.Post, int64, error)
	UpdateFields(postID uuid.UUID, updates map[string]interface{}) error
	UpdateStatus(postID uuid.UUID, status model.PostStatus) error
	Delete(postID uuid.UUID) error
	Counts(postID uuid.UUID) (reactions, donations, supporters, comments int64, err error)
	UpsertReaction(reaction *model.PostReaction) error
	RemoveReaction(postID, userID uuid.UUID) error
	FindReaction(postID, userID uuid.UUID) (*model.PostReaction, error)
}

// PostService handles the post feed, media and reactions
type PostService struct {
	postRepo PostStore
	storage  storage.Storage
}

// NewPostService creates a new post service
func NewPostService(postRepo PostStore, store storage.Storage) *PostService {
	return &PostService{postRepo: postRepo, storage: store}
}

// Create publishes a new post with its uploaded photos and videos
func (s *PostService) Create(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest, photos, videos []*multipart.FileHeader) (*model.PostResponse, error) {
	post := &model.Post{
		UserID:      userID,
		Type:        model.PostType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      model.PostStatusActive,
	}

	for _, header := range photos {
		if !isAllowedImage(header.Filename) {
			return nil, ErrInvalidInput
		}
		key, err := s.uploadMedia(ctx, header, "posts/photos")
		if err != nil {
			return nil, err
		}
		post.Photos = append(post.Photos, model.PostPhoto{PhotoURL: key})
	}
	for _, header := range videos {
		if !isAllowedVideo(header.Filename) {
			return nil, ErrInvalidInput
		}
		key, err := s.uploadMedia(ctx, header, "posts/videos")
		if err != nil {
			return nil, err
		}
		post.Videos = append(post.Videos, model.PostVideo{VideoURL: key})
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	log.Printf("✅ Post created: %s (%s) by %s", post.ID, post.Type, userID)
	return s.Get(ctx, post.ID, &userID)
}

// Get returns a post expanded with author, media links and counts
func (s *PostService) Get(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*model.PostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildResponse(ctx, post, viewerID)
}

// List returns the filtered post feed
func (s *PostService) List(ctx context.Context, filters model.PostFilters, viewerID *uuid.UUID) (*model.PostListResponse, error) {
	posts, total, err := s.postRepo.List(filters)
	if err != nil {
		return nil, err
	}

	items := make([]model.PostResponse, 0, len(posts))
	for i := range posts {
		resp, err := s.buildResponse(ctx, &posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return &model.PostListResponse{
		Posts:  items,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

// Update applies a partial edit. Only the author or an admin may edit.
func (s *PostService) Update(ctx context.Context, postID uuid.UUID, actor *model.User, req model.UpdatePostRequest) (*model.PostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}

	if err := s.postRepo.UpdateFields(postID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, postID, &actor.ID)
}

// Close marks a post as no longer accepting donations or support. Only
// the author or an admin may close it.
func (s *PostService) Close(ctx context.Context, postID uuid.UUID, actor *model.User) (*model.PostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if err := s.postRepo.UpdateStatus(postID, model.PostStatusClosed); err != nil {
		return nil, err
	}
	return s.Get(ctx, postID, &actor.ID)
}

// Delete removes a post and its media objects. Only the author or an
// admin may delete. Storage cleanup is best-effort; the database row is
// the source of truth.
func (s *PostService) Delete(ctx context.Context, postID uuid.UUID, actor *model.User) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return err
	}

	for _, photo := range post.Photos {
		if err := s.storage.Delete(ctx, photo.PhotoURL); err != nil {
			log.Printf("⚠️  Failed to delete post photo %s: %v", photo.PhotoURL, err)
		}
	}
	for _, video := range post.Videos {
		if err := s.storage.Delete(ctx, video.VideoURL); err != nil {
			log.Printf("⚠️  Failed to delete post video %s: %v", video.VideoURL, err)
		}
	}
	return nil
}

// React records or replaces the user's reaction to a post
func (s *PostService) React(postID, userID uuid.UUID, reactionType string) error {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	rt := model.ReactionLike
	if reactionType != "" {
		rt = model.ReactionType(reactionType)
	}
	return s.postRepo.UpsertReaction(&model.PostReaction{
		PostID: postID,
		UserID: userID,
		Type:   rt,
	})
}

// Unreact removes the user's reaction from a post
func (s *PostService) Unreact(postID, userID uuid.UUID) error {
	return s.postRepo.RemoveReaction(postID, userID)
}

func (s *PostService) buildResponse(ctx context.Context, post *model.Post, viewerID *uuid.UUID) (*model.PostResponse, error) {
	reactions, donations, supporters, comments, err := s.postRepo.Counts(post.ID)
	if err != nil {
		return nil, err
	}

	resp := &model.PostResponse{
		Post:               *post,
		AuthorFirstName:    post.User.FirstName,
		AuthorLastName:     post.User.LastName,
		AuthorProfileImage: presign(ctx, s.storage, post.User.ProfileImage, fileURLExpiry),
		Photos:             make([]string, 0, len(post.Photos)),
		Videos:             make([]string, 0, len(post.Videos)),
		ReactionCount:      reactions,
		DonationCount:      donations,
		SupporterCount:     supporters,
		CommentCount:       comments,
	}

	for _, photo := range post.Photos {
		if url := presign(ctx, s.storage, photo.PhotoURL, fileURLExpiry); url != "" {
			resp.Photos = append(resp.Photos, url)
		}
	}
	for _, video := range post.Videos {
		if url := presign(ctx, s.storage, video.VideoURL, fileURLExpiry); url != "" {
			resp.Videos = append(resp.Videos, url)
		}
	}

	if viewerID != nil {
		if reaction, err := s.postRepo.FindReaction(post.ID, *viewerID); err == nil {
			resp.UserReaction = &reaction.Type
		}
	}
	return resp, nil
}

func (s *PostService) uploadMedia(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
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
