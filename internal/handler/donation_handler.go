package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/middleware"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
)

// DonationHandler handles donation pledges and proofs
type DonationHandler struct {
	donationService *service.DonationService
}

func NewDonationHandler(donationService *service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Donate godoc
// @Summary Pledge a donation against a post
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param body body model.DonateRequest true "Donation pledge"
// @Success 201 {object} model.DonationResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{id}/donate [post]
func (h *DonationHandler) Donate(c *gin.Context) {
	postID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.donationService.Donate(c.Request.Context(), postID, user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List donations with filters
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param post_id query string false "Filter by post"
// @Param user_id query string false "Filter by donor"
// @Param verification_status query string false "pending | ongoing | fulfilled | rejected"
// @Success 200 {object} model.DonationListResponse
// @Router /donations [get]
func (h *DonationHandler) List(c *gin.Context) {
	var filters model.DonationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.donationService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a single donation
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} model.DonationResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /donations/{id} [get]
func (h *DonationHandler) Get(c *gin.Context) {
	donationID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.donationService.Get(c.Request.Context(), donationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Edit a pending pledge (donor only)
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param body body model.UpdateDonationRequest true "Fields to update"
// @Success 200 {object} model.DonationResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /donations/{id} [put]
func (h *DonationHandler) Update(c *gin.Context) {
	donationID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.donationService.Update(c.Request.Context(), donationID, middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddProof godoc
// @Summary Attach a proof image to a pledge (donor only)
// @Tags Donations
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param proof formData file true "Proof image"
// @Success 200 {object} model.DonationResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /donations/{id}/proofs [post]
func (h *DonationHandler) AddProof(c *gin.Context) {
	donationID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("proof")
	if err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.donationService.AddProof(c.Request.Context(), donationID, user.ID, fh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
