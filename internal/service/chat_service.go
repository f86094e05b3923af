package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/pkg/storage"
	"gorm.io/gorm"
)

// ChatStore is the persistence surface for chats and messages
type ChatStore interface {
	Create(chat *model.Chat) error
	FindByID(id uuid.UUID) (*model.Chat, error)
	FindPrivateChat(userA, userB uuid.UUID) (*model.Chat, error)
	ListForUser(userID uuid.UUID, limit, offset int) ([]model.Chat, int64, error)
	IsParticipant(chatID, userID uuid.UUID) (bool, error)
	AddParticipant(participant *model.ChatParticipant) error
	CreateMessage(msg *model.Message) error
	ListMessages(chatID uuid.UUID, limit, offset int) ([]model.Message, int64, error)
	LastMessage(chatID uuid.UUID) (*model.Message, error)
	CountUnread(chatID, userID uuid.UUID) (int64, error)
	MarkSeen(chatID, userID uuid.UUID) error
}

// ChatService handles private and group conversations
type ChatService struct {
	chatRepo ChatStore
	storage  storage.Storage
}

// NewChatService creates a new chat service
func NewChatService(chatRepo ChatStore, store storage.Storage) *ChatService {
	return &ChatService{chatRepo: chatRepo, storage: store}
}

// CreateChat opens a conversation. A private chat between two users is
// unique; asking again returns the existing one instead of a duplicate.
func (s *ChatService) CreateChat(ctx context.Context, creatorID uuid.UUID, req model.CreateChatRequest) (*model.ChatResponse, error) {
	chatType := model.ChatTypePrivate
	if req.Type != "" {
		chatType = model.ChatType(req.Type)
	}

	members := dedupeMembers(creatorID, req.ParticipantIDs)
	if len(members) < 2 {
		return nil, ErrInvalidInput
	}
	if chatType == model.ChatTypePrivate && len(members) != 2 {
		return nil, ErrInvalidInput
	}

	if chatType == model.ChatTypePrivate {
		existing, err := s.chatRepo.FindPrivateChat(members[0], members[1])
		if err == nil {
			return s.buildResponse(ctx, existing, creatorID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	chat := &model.Chat{Type: chatType}
	for _, userID := range members {
		chat.Participants = append(chat.Participants, model.ChatParticipant{UserID: userID})
	}
	if err := s.chatRepo.Create(chat); err != nil {
		return nil, err
	}

	created, err := s.chatRepo.FindByID(chat.ID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, created, creatorID)
}

// GetChat returns a conversation the user participates in
func (s *ChatService) GetChat(ctx context.Context, chatID, userID uuid.UUID) (*model.ChatResponse, error) {
	if err := s.requireMember(chatID, userID); err != nil {
		return nil, err
	}
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildResponse(ctx, chat, userID)
}

// ListChats returns the user's conversations, most recently active first
func (s *ChatService) ListChats(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ChatResponse, int64, error) {
	chats, total, err := s.chatRepo.ListForUser(userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.ChatResponse, 0, len(chats))
	for i := range chats {
		resp, err := s.buildResponse(ctx, &chats[i], userID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *resp)
	}
	return items, total, nil
}

// SendMessage posts a text or media message into a chat the sender
// participates in
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, content string, media []*multipart.FileHeader) (*model.Message, error) {
	if err := s.requireMember(chatID, senderID); err != nil {
		return nil, err
	}
	if content == "" && len(media) == 0 {
		return nil, ErrInvalidInput
	}

	msg := &model.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
		Type:     model.MessageTypeText,
	}

	for _, header := range media {
		if !isAllowedImage(header.Filename) && !isAllowedVideo(header.Filename) {
			return nil, ErrInvalidInput
		}
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}
		result, err := s.storage.Upload(ctx, file, header, "chats")
		file.Close()
		if err != nil {
			return nil, err
		}
		msg.Media = append(msg.Media, model.MessageMedia{
			Type:     mediaTypeOf(result.MimeType),
			MediaURL: result.Key,
		})
	}
	if len(msg.Media) > 0 {
		msg.Type = model.MessageTypeMedia
	}

	if err := s.chatRepo.CreateMessage(msg); err != nil {
		return nil, err
	}

	s.presignMessage(ctx, msg)
	return msg, nil
}

// ListMessages returns a chat's messages, newest first
func (s *ChatService) ListMessages(ctx context.Context, chatID, userID uuid.UUID, limit, offset int) (*model.MessageListResponse, error) {
	if err := s.requireMember(chatID, userID); err != nil {
		return nil, err
	}

	messages, total, err := s.chatRepo.ListMessages(chatID, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range messages {
		s.presignMessage(ctx, &messages[i])
	}

	return &model.MessageListResponse{
		Messages: messages,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// MarkSeen acknowledges every unseen message in the chat for the user
func (s *ChatService) MarkSeen(chatID, userID uuid.UUID) error {
	if err := s.requireMember(chatID, userID); err != nil {
		return err
	}
	return s.chatRepo.MarkSeen(chatID, userID)
}

// AddParticipant adds a user to a group chat. Any existing member may
// invite; private chats stay two-person.
func (s *ChatService) AddParticipant(chatID, actorID, newUserID uuid.UUID) error {
	if err := s.requireMember(chatID, actorID); err != nil {
		return err
	}

	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if chat.Type != model.ChatTypeGroup {
		return ErrInvalidInput
	}

	member, err := s.chatRepo.IsParticipant(chatID, newUserID)
	if err != nil {
		return err
	}
	if member {
		return nil
	}
	return s.chatRepo.AddParticipant(&model.ChatParticipant{
		ChatID: chatID,
		UserID: newUserID,
	})
}

func (s *ChatService) requireMember(chatID, userID uuid.UUID) error {
	member, err := s.chatRepo.IsParticipant(chatID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrForbidden
	}
	return nil
}

func (s *ChatService) buildResponse(ctx context.Context, chat *model.Chat, userID uuid.UUID) (*model.ChatResponse, error) {
	resp := &model.ChatResponse{Chat: *chat}

	last, err := s.chatRepo.LastMessage(chat.ID)
	if err == nil {
		s.presignMessage(ctx, last)
		resp.LastMessage = last
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	unread, err := s.chatRepo.CountUnread(chat.ID, userID)
	if err != nil {
		return nil, err
	}
	resp.UnreadCount = unread
	return resp, nil
}

// presignMessage swaps stored object keys for download links before a
// message leaves the API
func (s *ChatService) presignMessage(ctx context.Context, msg *model.Message) {
	for i := range msg.Media {
		msg.Media[i].MediaURL = presign(ctx, s.storage, msg.Media[i].MediaURL, fileURLExpiry)
		if msg.Media[i].ThumbnailURL != "" {
			msg.Media[i].ThumbnailURL = presign(ctx, s.storage, msg.Media[i].ThumbnailURL, fileURLExpiry)
		}
	}
}

func mediaTypeOf(mimeType string) model.MediaType {
	if strings.HasPrefix(mimeType, "video/") {
		return model.MediaTypeVideo
	}
	return model.MediaTypeImage
}

func dedupeMembers(creator uuid.UUID, others []uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]bool{creator: true}
	members := []uuid.UUID{creator}
	for _, id := range others {
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}
	return members
}
