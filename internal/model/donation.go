package model

import (
	"time"

	"github.com/google/uuid"
)

// DonationStatus is the verification state of a pledged donation
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusOngoing   DonationStatus = "ongoing"
	DonationStatusFulfilled DonationStatus = "fulfilled"
	DonationStatusRejected  DonationStatus = "rejected"
)

// Donation records a pledge made against a post
type Donation struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID    uuid.UUID      `json:"post_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Amount    float64        `json:"amount" gorm:"type:numeric(12,2);not null"`
	Message   string         `json:"message" gorm:"type:text;default:''"`
	Status    DonationStatus `json:"verification_status" gorm:"size:20;default:'pending';index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relations
	User   User            `json:"-" gorm:"foreignKey:UserID"`
	Post   Post            `json:"-" gorm:"foreignKey:PostID"`
	Proofs []DonationProof `json:"-" gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE"`
}

// DonationProof is an uploaded image evidencing a donation (object key)
type DonationProof struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DonationID uuid.UUID `json:"donation_id" gorm:"type:uuid;not null;index"`
	ImageURL   string    `json:"image_url" gorm:"size:500;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
