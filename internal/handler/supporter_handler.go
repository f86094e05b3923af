package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/middleware"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
)

// SupporterHandler handles non-monetary support pledges
type SupporterHandler struct {
	supporterService *service.SupporterService
}

func NewSupporterHandler(supporterService *service.SupporterService) *SupporterHandler {
	return &SupporterHandler{supporterService: supporterService}
}

// Support godoc
// @Summary Back a post with non-monetary support
// @Tags Supporters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param body body model.SupportRequest false "Support details, type defaults to share"
// @Success 201 {object} model.SupporterResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{id}/support [post]
func (h *SupporterHandler) Support(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.SupportRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.supporterService.Support(c.Request.Context(), postID, user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List supporters with filters
// @Tags Supporters
// @Produce json
// @Security BearerAuth
// @Param post_id query string false "Filter by post"
// @Param user_id query string false "Filter by supporter"
// @Param support_type query string false "share | volunteer | advocate | other"
// @Success 200 {object} model.SupporterListResponse
// @Router /supporters [get]
func (h *SupporterHandler) List(c *gin.Context) {
	var filters model.SupporterFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.supporterService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a support pledge
// @Tags Supporters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supporter ID"
// @Success 200 {object} model.SupporterResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /supporters/{id} [get]
func (h *SupporterHandler) Get(c *gin.Context) {
	supporterID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.supporterService.Get(c.Request.Context(), supporterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Edit a support pledge (owner or admin)
// @Tags Supporters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supporter ID"
// @Param body body model.UpdateSupporterRequest true "Fields to update"
// @Success 200 {object} model.SupporterResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /supporters/{id} [put]
func (h *SupporterHandler) Update(c *gin.Context) {
	supporterID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateSupporterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.supporterService.Update(c.Request.Context(), supporterID, middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddProof godoc
// @Summary Attach a proof image to a support pledge (owner only)
// @Tags Supporters
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supporter ID"
// @Param proof formData file true "Proof image"
// @Success 200 {object} model.SupporterResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /supporters/{id}/proofs [post]
func (h *SupporterHandler) AddProof(c *gin.Context) {
	supporterID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("proof")
	if err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.supporterService.AddProof(c.Request.Context(), supporterID, user.ID, fh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
