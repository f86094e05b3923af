package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/middleware"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
)

// CommentHandler handles threaded comments on posts
type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create godoc
// @Summary Comment on a post (set parent_id to reply)
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param body body model.CreateCommentRequest true "Comment"
// @Success 201 {object} model.CommentResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.commentService.Create(c.Request.Context(), postID, user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List a post's visible comments, oldest first
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} model.CommentListResponse
// @Router /posts/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	limit, offset := pagination(c, 50)
	resp, err := h.commentService.ListForPost(c.Request.Context(), postID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Edit a comment (author only)
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param body body model.UpdateCommentRequest true "New content"
// @Success 200 {object} model.CommentResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.commentService.Update(c.Request.Context(), commentID, middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Soft-delete a comment (author or admin)
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(commentID, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Comment deleted successfully"})
}
