package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatType distinguishes one-on-one chats from group chats
type ChatType string

const (
	ChatTypePrivate ChatType = "private"
	ChatTypeGroup   ChatType = "group"
)

// MessageType is the payload kind of a chat message
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeMedia MessageType = "media"
)

// MediaType classifies an attachment on a media message
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Chat is a private or group conversation
type Chat struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type      ChatType  `json:"type" gorm:"size:10;default:'private'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Participants []ChatParticipant `json:"participants,omitempty" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}

// ChatParticipant is a membership row; a user appears at most once per chat
type ChatParticipant struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatID   uuid.UUID `json:"chat_id" gorm:"type:uuid;not null;uniqueIndex:idx_chat_participant"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_chat_participant"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
}

// Message is a single chat message, text or media
type Message struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatID    uuid.UUID   `json:"chat_id" gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID   `json:"sender_id" gorm:"type:uuid;not null"`
	Content   string      `json:"content" gorm:"type:text;default:''"`
	Type      MessageType `json:"message_type" gorm:"size:10;default:'text'"`
	CreatedAt time.Time   `json:"created_at"`

	// Relations
	Sender User           `json:"-" gorm:"foreignKey:SenderID"`
	Media  []MessageMedia `json:"media,omitempty" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

// MessageMedia is an attachment on a media message (object keys in storage)
type MessageMedia struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageID    uuid.UUID `json:"message_id" gorm:"type:uuid;not null;index"`
	Type         MediaType `json:"media_type" gorm:"size:10;not null"`
	MediaURL     string    `json:"media_url" gorm:"size:500;not null"`
	ThumbnailURL string    `json:"thumbnail_url" gorm:"size:500;default:''"`
}

// MessageReceipt tracks per-recipient delivery state. A row is created
// lazily when a recipient marks the message seen.
type MessageReceipt struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageID uuid.UUID `json:"message_id" gorm:"type:uuid;not null;uniqueIndex:idx_receipt_message_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_receipt_message_user"`
	SeenAt    time.Time `json:"seen_at" gorm:"autoCreateTime"`
}
