package model

import (
	"time"

	"github.com/google/uuid"
)

// SupportType enumerates non-monetary ways to back a post
type SupportType string

const (
	SupportTypeShare     SupportType = "share"
	SupportTypeVolunteer SupportType = "volunteer"
	SupportTypeAdvocate  SupportType = "advocate"
	SupportTypeOther     SupportType = "other"
)

// Supporter records non-monetary support pledged against a post
type Supporter struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID    uuid.UUID   `json:"post_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      SupportType `json:"support_type" gorm:"size:20;default:'share'"`
	Message   string      `json:"message" gorm:"type:text;default:''"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Relations
	User   User             `json:"-" gorm:"foreignKey:UserID"`
	Post   Post             `json:"-" gorm:"foreignKey:PostID"`
	Proofs []SupporterProof `json:"-" gorm:"foreignKey:SupporterID;constraint:OnDelete:CASCADE"`
}

// SupporterProof is an uploaded image evidencing support (object key)
type SupporterProof struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupporterID uuid.UUID `json:"supporter_id" gorm:"type:uuid;not null;index"`
	ImageURL    string    `json:"image_url" gorm:"size:500;not null"`
	CreatedAt   time.Time `json:"created_at"`
}
