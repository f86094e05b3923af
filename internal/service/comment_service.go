package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/pkg/storage"
	"gorm.io/gorm"
)

// CommentStore is the persistence surface for comments
type CommentStore interface {
	Create(comment *model.Comment) error
	FindByID(id uuid.UUID) (*model.Comment, error)
	ListForPost(postID uuid.UUID, status model.CommentStatus, limit, offset int) ([]model.Comment, int64, error)
	ListAll(status model.CommentStatus, limit, offset int) ([]model.Comment, int64, error)
	UpdateContent(commentID uuid.UUID, content string) error
	UpdateStatus(commentID uuid.UUID, status model.CommentStatus) error
}

// CommentService handles threaded comments on posts
type CommentService struct {
	commentRepo CommentStore
	postRepo    PostStore
	storage     storage.Storage
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo CommentStore, postRepo PostStore, store storage.Storage) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		storage:     store,
	}
}

// Create posts a comment or a reply. Replies must point at a visible
// comment on the same post.
func (s *CommentService) Create(ctx context.Context, postID, userID uuid.UUID, req model.CreateCommentRequest) (*model.CommentResponse, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.FindByID(*req.ParentID)
		if err != nil || parent.PostID != postID || parent.Status != model.CommentStatusVisible {
			return nil, ErrInvalidInput
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  req.Content,
		Status:   model.CommentStatusVisible,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return s.Get(ctx, comment.ID)
}

// Get returns a comment expanded with author info
func (s *CommentService) Get(ctx context.Context, commentID uuid.UUID) (*model.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildResponse(ctx, comment), nil
}

// ListForPost returns a post's visible comments, oldest first
func (s *CommentService) ListForPost(ctx context.Context, postID uuid.UUID, limit, offset int) (*model.CommentListResponse, error) {
	comments, total, err := s.commentRepo.ListForPost(postID, model.CommentStatusVisible, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]model.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, *s.buildResponse(ctx, &comments[i]))
	}

	return &model.CommentListResponse{
		Comments: items,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// Update edits a comment's text. Only the author may edit.
func (s *CommentService) Update(ctx context.Context, commentID uuid.UUID, actor *model.User, req model.UpdateCommentRequest) (*model.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.UserID != actor.ID {
		return nil, ErrForbidden
	}

	if err := s.commentRepo.UpdateContent(commentID, req.Content); err != nil {
		return nil, err
	}
	return s.Get(ctx, commentID)
}

// Delete soft-deletes a comment so replies beneath it stay readable.
// The author or an admin may delete.
func (s *CommentService) Delete(commentID uuid.UUID, actor *model.User) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.UserID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.commentRepo.UpdateStatus(commentID, model.CommentStatusDeleted)
}

func (s *CommentService) buildResponse(ctx context.Context, comment *model.Comment) *model.CommentResponse {
	return &model.CommentResponse{
		Comment:            *comment,
		AuthorFirstName:    comment.User.FirstName,
		AuthorLastName:     comment.User.LastName,
		AuthorProfileImage: presign(ctx, s.storage, comment.User.ProfileImage, fileURLExpiry),
	}
}
