package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
)

// AdminHandler exposes the moderation panel
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers godoc
// @Summary List users with account type and badge filters
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param account_type query string false "beneficiary | donor | volunteer | verified_organization | admin"
// @Param badge query string false "under_review | verified | rejected"
// @Success 200 {object} model.UserListResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filters model.AdminUserFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.adminService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListVerificationRequests godoc
// @Summary List users awaiting badge review, oldest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserListResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /admin/verification-requests [get]
func (h *AdminHandler) ListVerificationRequests(c *gin.Context) {
	limit, offset := pagination(c, 50)
	resp, err := h.adminService.ListVerificationRequests(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateBadge godoc
// @Summary Set a user's verification badge
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body model.UpdateBadgeRequest true "New badge"
// @Success 200 {object} model.UserResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /admin/users/{id}/badge [put]
func (h *AdminHandler) UpdateBadge(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.adminService.UpdateBadge(userID, model.Badge(req.Badge))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdateAccountType godoc
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body model.UpdateAccountTypeRequest true "New account type"
// @Success 200 {object} model.UserResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /admin/users/{id}/account-type [put]
func (h *AdminHandler) UpdateAccountType(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.adminService.UpdateAccountType(userID, model.AccountType(req.AccountType))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdatePostStatus godoc
// @Summary Move a post through its lifecycle
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param body body model.UpdatePostStatusRequest true "New status"
// @Success 200 {object} model.SuccessResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /admin/posts/{id}/status [put]
func (h *AdminHandler) UpdatePostStatus(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.adminService.UpdatePostStatus(postID, model.PostStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Post status updated"})
}

// UpdateDonationStatus godoc
// @Summary Advance a donation's verification state
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param body body model.UpdateDonationStatusRequest true "New status"
// @Success 200 {object} model.SuccessResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /admin/donations/{id}/status [put]
func (h *AdminHandler) UpdateDonationStatus(c *gin.Context) {
	donationID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateDonationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.adminService.UpdateDonationStatus(donationID, model.DonationStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Donation status updated"})
}

// ListComments godoc
// @Summary List comments across all posts for moderation
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "visible | hidden | deleted"
// @Success 200 {object} model.CommentListResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /admin/comments [get]
func (h *AdminHandler) ListComments(c *gin.Context) {
	limit, offset := pagination(c, 50)
	status := model.CommentStatus(c.Query("status"))

	resp, err := h.adminService.ListComments(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCommentStatus godoc
// @Summary Change a comment's visibility
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param body body model.UpdateCommentStatusRequest true "New status"
// @Success 200 {object} model.SuccessResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /admin/comments/{id}/status [put]
func (h *AdminHandler) UpdateCommentStatus(c *gin.Context) {
	commentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCommentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.adminService.UpdateCommentStatus(commentID, model.CommentStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Comment status updated"})
}

// Statistics godoc
// @Summary Platform-wide aggregate counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Statistics
// @Failure 403 {object} model.ErrorResponse
// @Router /admin/statistics [get]
func (h *AdminHandler) Statistics(c *gin.Context) {
	stats, err := h.adminService.Statistics()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Dashboard godoc
// @Summary Statistics plus the recent activity feed
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	resp, err := h.adminService.Dashboard(20)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
