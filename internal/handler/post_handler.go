package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/middleware"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
)

// PostHandler handles the post feed and reactions
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create godoc
// @Summary Create a post with photos and videos
// @Tags Posts
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param post_type formData string true "donation | request"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param photos formData file false "Photos (repeatable)"
// @Param videos formData file false "Videos (repeatable)"
// @Success 201 {object} model.PostResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.postService.Create(c.Request.Context(), user.ID, req,
		form.File["photos"], form.File["videos"])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List posts with filters
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param post_type query string false "donation | request"
// @Param status query string false "pending | active | closed | rejected"
// @Param user_id query string false "Filter by author"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {object} model.PostListResponse
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var filters model.PostFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.postService.List(c.Request.Context(), filters, &user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a single post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.PostResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.postService.Get(c.Request.Context(), postID, &user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Edit a post (author or admin)
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param body body model.UpdatePostRequest true "Fields to update"
// @Success 200 {object} model.PostResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.postService.Update(c.Request.Context(), postID, middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close godoc
// @Summary Close a post (author or admin)
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.PostResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /posts/{id}/close [post]
func (h *PostHandler) Close(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.postService.Close(c.Request.Context(), postID, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a post (author or admin)
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), postID, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Post deleted successfully"})
}

// React godoc
// @Summary React to a post (re-reacting replaces the type)
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param body body model.ReactionRequest false "Reaction type, defaults to like"
// @Success 200 {object} model.SuccessResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{id}/react [post]
func (h *PostHandler) React(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.postService.React(postID, user.ID, req.Type); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Reaction recorded"})
}

// Unreact godoc
// @Summary Remove your reaction from a post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.SuccessResponse
// @Router /posts/{id}/react [delete]
func (h *PostHandler) Unreact(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.postService.Unreact(postID, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Reaction removed"})
}
