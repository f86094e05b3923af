package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/middleware"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
)

// ChatHandler handles private and group conversations
type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Create godoc
// @Summary Open a conversation (private chats are deduplicated)
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateChatRequest true "Chat request"
// @Success 201 {object} model.ChatResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /chats [post]
func (h *ChatHandler) Create(c *gin.Context) {
	var req model.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.chatService.CreateChat(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List your conversations, most recently active first
// @Tags Chats
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.ChatResponse
// @Router /chats [get]
func (h *ChatHandler) List(c *gin.Context) {
	limit, offset := pagination(c, 20)

	user := middleware.CurrentUser(c)
	chats, total, err := h.chatService.ListChats(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chats":  chats,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Get godoc
// @Summary Get one conversation (participants only)
// @Tags Chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Success 200 {object} model.ChatResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /chats/{id} [get]
func (h *ChatHandler) Get(c *gin.Context) {
	chatID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.chatService.GetChat(c.Request.Context(), chatID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendMessage godoc
// @Summary Send a text or media message
// @Tags Chats
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Param content formData string false "Message text"
// @Param media formData file false "Attachments (repeatable)"
// @Success 201 {object} model.Message
// @Failure 403 {object} model.ErrorResponse
// @Router /chats/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	chatID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	content := c.PostForm("content")

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["media"]
	}

	user := middleware.CurrentUser(c)
	msg, err := h.chatService.SendMessage(c.Request.Context(), chatID, user.ID, content, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListMessages godoc
// @Summary List a conversation's messages, newest first
// @Tags Chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} model.MessageListResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /chats/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	chatID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	limit, offset := pagination(c, 50)
	user := middleware.CurrentUser(c)
	resp, err := h.chatService.ListMessages(c.Request.Context(), chatID, user.ID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkSeen godoc
// @Summary Mark every message in a conversation as seen
// @Tags Chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /chats/{id}/seen [post]
func (h *ChatHandler) MarkSeen(c *gin.Context) {
	chatID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.chatService.MarkSeen(chatID, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Messages marked as seen"})
}

// AddParticipant godoc
// @Summary Add a user to a group chat (members only)
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Param body body model.AddParticipantRequest true "User to add"
// @Success 200 {object} model.SuccessResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /chats/{id}/participants [post]
func (h *ChatHandler) AddParticipant(c *gin.Context) {
	chatID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.chatService.AddParticipant(chatID, user.ID, req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Participant added"})
}
