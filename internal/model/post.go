package model

import (
	"time"

	"github.com/google/uuid"
)

// PostType distinguishes offers of help from requests for it
type PostType string

const (
	PostTypeDonation PostType = "donation"
	PostTypeRequest  PostType = "request"
)

// PostStatus is the moderation/lifecycle state of a post
type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusActive   PostStatus = "active"
	PostStatusClosed   PostStatus = "closed"
	PostStatusRejected PostStatus = "rejected"
)

// ReactionType enumerates post reactions
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionLove    ReactionType = "love"
	ReactionCare    ReactionType = "care"
	ReactionSupport ReactionType = "support"
)

// Post represents a donation offer or a help request
type Post struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Type        PostType   `json:"post_type" gorm:"size:20;not null;index"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text;default:''"`
	Address     string     `json:"address" gorm:"size:500;default:''"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Status      PostStatus `json:"status" gorm:"size:20;default:'active';index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	User   User        `json:"-" gorm:"foreignKey:UserID"`
	Photos []PostPhoto `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Videos []PostVideo `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// PostPhoto is a single photo attached to a post (object key in storage)
type PostPhoto struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID   uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index"`
	PhotoURL string    `json:"photo_url" gorm:"size:500;not null"`
}

// PostVideo is a single video attached to a post (object key in storage)
type PostVideo struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID   uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index"`
	VideoURL string    `json:"video_url" gorm:"size:500;not null"`
}

// PostReaction records one user's reaction to a post; one row per
// (post, user), re-reacting replaces the type.
type PostReaction struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID    uuid.UUID    `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_reaction_post_user"`
	UserID    uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reaction_post_user"`
	Type      ReactionType `json:"reaction_type" gorm:"size:20;not null;default:'like'"`
	CreatedAt time.Time    `json:"created_at"`
}
