package repository

import (
	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"gorm.io/gorm"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID loads a comment with its author
func (r *CommentRepository) FindByID(id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("User").Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListForPost returns a post's comments with the given status, oldest
// first so threads read top-down, plus a total count
func (r *CommentRepository) ListForPost(postID uuid.UUID, status model.CommentStatus, limit, offset int) ([]model.Comment, int64, error) {
	q := r.db.Model(&model.Comment{}).Where("post_id = ? AND status = ?", postID, status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := q.
		Preload("User").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, total, err
}

// ListAll returns comments across all posts for moderation, newest first
func (r *CommentRepository) ListAll(status model.CommentStatus, limit, offset int) ([]model.Comment, int64, error) {
	q := r.db.Model(&model.Comment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := q.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, total, err
}

// UpdateContent replaces a comment's text
func (r *CommentRepository) UpdateContent(commentID uuid.UUID, content string) error {
	return r.db.Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("content", content).Error
}

// UpdateStatus flips a comment's visibility; deletion is soft so reply
// chains survive
func (r *CommentRepository) UpdateStatus(commentID uuid.UUID, status model.CommentStatus) error {
	return r.db.Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("status", status).Error
}
