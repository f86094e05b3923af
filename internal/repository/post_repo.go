package repository

import (
	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository handles database operations for posts, media and reactions
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a post together with its photo/video rows
func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// FindByID loads a post with its author and media
func (r *PostRepository) FindByID(id uuid.UUID) (*model.Post, error) {
	var post model.Post
	err := r.db.
		Preload("User").
		Preload("Photos").
		Preload("Videos").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts matching the filters, newest first, plus a total count
func (r *PostRepository) List(filters model.PostFilters) ([]model.Post, int64, error) {
	q := r.db.Model(&model.Post{})
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := q.
		Preload("User").
		Preload("Photos").
		Preload("Videos").
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&posts).Error
	return posts, total, err
}

// UpdateFields applies a partial update to a post row
func (r *PostRepository) UpdateFields(postID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&model.Post{}).Where("id = ?", postID).Updates(updates).Error
}

// UpdateStatus changes a post's lifecycle state
func (r *PostRepository) UpdateStatus(postID uuid.UUID, status model.PostStatus) error {
	return r.db.Model(&model.Post{}).
		Where("id = ?", postID).
		Update("status", status).Error
}

// Delete removes a post; child rows cascade at the database level
func (r *PostRepository) Delete(postID uuid.UUID) error {
	return r.db.Delete(&model.Post{}, "id = ?", postID).Error
}

// Counts returns the reaction, donation, supporter and visible-comment
// totals for a post
func (r *PostRepository) Counts(postID uuid.UUID) (reactions, donations, supporters, comments int64, err error) {
	if err = r.db.Model(&model.PostReaction{}).Where("post_id = ?", postID).Count(&reactions).Error; err != nil {
		return
	}
	if err = r.db.Model(&model.Donation{}).Where("post_id = ?", postID).Count(&donations).Error; err != nil {
		return
	}
	if err = r.db.Model(&model.Supporter{}).Where("post_id = ?", postID).Count(&supporters).Error; err != nil {
		return
	}
	err = r.db.Model(&model.Comment{}).
		Where("post_id = ? AND status = ?", postID, model.CommentStatusVisible).
		Count(&comments).Error
	return
}

// UpsertReaction inserts a reaction or replaces its type if the user
// already reacted to the post
func (r *PostRepository) UpsertReaction(reaction *model.PostReaction) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type"}),
	}).Create(reaction).Error
}

// RemoveReaction deletes the user's reaction to a post
func (r *PostRepository) RemoveReaction(postID, userID uuid.UUID) error {
	return r.db.
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostReaction{}).Error
}

// FindReaction returns the user's reaction to a post, if any
func (r *PostRepository) FindReaction(postID, userID uuid.UUID) (*model.PostReaction, error) {
	var reaction model.PostReaction
	err := r.db.
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}
