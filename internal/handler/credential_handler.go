package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/middleware"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
)

// CredentialHandler serves time-limited links to stored files
type CredentialHandler struct {
	credentialService *service.CredentialService
}

func NewCredentialHandler(credentialService *service.CredentialService) *CredentialHandler {
	return &CredentialHandler{credentialService: credentialService}
}

// Credentials godoc
// @Summary Get presigned links to a user's identity documents
// @Description Only the owner and admins may access; links expire after 7 days.
// @Tags Credentials
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.CredentialsResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /users/{id}/credentials [get]
func (h *CredentialHandler) Credentials(c *gin.Context) {
	targetID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.credentialService.Credentials(c.Request.Context(), middleware.CurrentUser(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FileURL godoc
// @Summary Mint a short-lived download link for a stored object key
// @Tags Credentials
// @Produce json
// @Security BearerAuth
// @Param key query string true "Object key"
// @Success 200 {object} model.FileURLResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /files/url [get]
func (h *CredentialHandler) FileURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "key query parameter required"})
		return
	}

	resp, err := h.credentialService.FileURL(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
