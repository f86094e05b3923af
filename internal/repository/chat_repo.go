package repository

import (
	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"gorm.io/gorm"
)

// ChatRepository handles database operations for chats and messages
type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create inserts a chat together with its participant rows
func (r *ChatRepository) Create(chat *model.Chat) error {
	return r.db.Create(chat).Error
}

// FindByID loads a chat with its participants
func (r *ChatRepository) FindByID(id uuid.UUID) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.
		Preload("Participants.User").
		Where("id = ?", id).
		First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindPrivateChat finds the private chat shared by exactly these two users
func (r *ChatRepository) FindPrivateChat(userA, userB uuid.UUID) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.
		Preload("Participants.User").
		Where("type = ?", model.ChatTypePrivate).
		Where("id IN (?)", r.db.Model(&model.ChatParticipant{}).
			Select("chat_id").
			Where("user_id IN ?", []uuid.UUID{userA, userB}).
			Group("chat_id").
			Having("COUNT(DISTINCT user_id) = 2")).
		First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListForUser returns the chats a user participates in, most recently
// updated first, plus a total count
func (r *ChatRepository) ListForUser(userID uuid.UUID, limit, offset int) ([]model.Chat, int64, error) {
	memberOf := r.db.Model(&model.ChatParticipant{}).
		Select("chat_id").
		Where("user_id = ?", userID)

	q := r.db.Model(&model.Chat{}).Where("id IN (?)", memberOf)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var chats []model.Chat
	err := q.
		Preload("Participants.User").
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&chats).Error
	return chats, total, err
}

// IsParticipant checks chat membership
func (r *ChatRepository) IsParticipant(chatID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.ChatParticipant{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddParticipant adds a user to a chat
func (r *ChatRepository) AddParticipant(participant *model.ChatParticipant) error {
	return r.db.Create(participant).Error
}

// CreateMessage inserts a message together with its media rows and bumps
// the chat's updated_at so chat lists sort by activity
func (r *ChatRepository) CreateMessage(msg *model.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&model.Chat{}).
			Where("id = ?", msg.ChatID).
			Update("updated_at", msg.CreatedAt).Error
	})
}

// ListMessages returns a chat's messages, newest first, plus a total count
func (r *ChatRepository) ListMessages(chatID uuid.UUID, limit, offset int) ([]model.Message, int64, error) {
	q := r.db.Model(&model.Message{}).Where("chat_id = ?", chatID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.Message
	err := q.
		Preload("Media").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, total, err
}

// LastMessage returns the newest message in a chat, or nil if empty
func (r *ChatRepository) LastMessage(chatID uuid.UUID) (*model.Message, error) {
	var msg model.Message
	err := r.db.
		Preload("Media").
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// CountUnread counts messages from other senders the user has not yet seen
func (r *ChatRepository) CountUnread(chatID, userID uuid.UUID) (int64, error) {
	seen := r.db.Model(&model.MessageReceipt{}).
		Select("message_id").
		Where("user_id = ?", userID)

	var count int64
	err := r.db.Model(&model.Message{}).
		Where("chat_id = ? AND sender_id <> ?", chatID, userID).
		Where("id NOT IN (?)", seen).
		Count(&count).Error
	return count, err
}

// MarkSeen records seen receipts for every message in the chat the user
// has not yet acknowledged
func (r *ChatRepository) MarkSeen(chatID, userID uuid.UUID) error {
	seen := r.db.Model(&model.MessageReceipt{}).
		Select("message_id").
		Where("user_id = ?", userID)

	var unseen []model.Message
	if err := r.db.
		Where("chat_id = ? AND sender_id <> ?", chatID, userID).
		Where("id NOT IN (?)", seen).
		Find(&unseen).Error; err != nil {
		return err
	}
	if len(unseen) == 0 {
		return nil
	}

	receipts := make([]model.MessageReceipt, 0, len(unseen))
	for _, m := range unseen {
		receipts = append(receipts, model.MessageReceipt{
			MessageID: m.ID,
			UserID:    userID,
		})
	}
	return r.db.Create(&receipts).Error
}
