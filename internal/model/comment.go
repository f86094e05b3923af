package model

import (
	"time"

	"github.com/google/uuid"
)

// CommentStatus controls comment visibility
type CommentStatus string

const (
	CommentStatusVisible CommentStatus = "visible"
	CommentStatusHidden  CommentStatus = "hidden"
	CommentStatusDeleted CommentStatus = "deleted"
)

// Comment is a threaded comment on a post. Replies point at their parent;
// deletion is soft (status flip) so reply chains stay intact.
type Comment struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID    uuid.UUID     `json:"post_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	ParentID  *uuid.UUID    `json:"parent_id" gorm:"type:uuid;index"`
	Content   string        `json:"content" gorm:"type:text;not null"`
	Status    CommentStatus `json:"status" gorm:"size:10;default:'visible';index"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
