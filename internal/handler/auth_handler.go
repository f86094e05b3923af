package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/middleware"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
	"github.com/helplink/api/pkg/auth"
	"github.com/helplink/api/pkg/storage"
)

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	authService *service.AuthService
	otpService  *service.OTPService
	jwt         *auth.JWTManager
	storage     storage.Storage
}

func NewAuthHandler(authService *service.AuthService, otpService *service.OTPService, jwt *auth.JWTManager, store storage.Storage) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
		jwt:         jwt,
		storage:     store,
	}
}

// Register godoc
// @Summary Register a new user with optional identity images
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param email formData string true "Email"
// @Param password formData string true "Password (min 6 chars)"
// @Param account_type formData string false "beneficiary | donor | volunteer | verified_organization"
// @Param profile_image formData file false "Profile image"
// @Param verification_selfie formData file false "Verification selfie"
// @Param valid_id formData file false "Valid ID image"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	files := service.RegisterFiles{}
	if fh, err := c.FormFile("profile_image"); err == nil {
		files.ProfileImage = fh
	}
	if fh, err := c.FormFile("verification_selfie"); err == nil {
		files.VerificationSelfie = fh
	}
	if fh, err := c.FormFile("valid_id"); err == nil {
		files.ValidID = fh
	}

	user, err := h.authService.Register(c.Request.Context(), req, files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

// Login godoc
// @Summary Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.LoginRequest true "Login request"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, user, err := h.authService.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.ToResponse(),
	})
}

// Logout godoc
// @Summary Revoke the current token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.SuccessResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.Token(c)
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		respondError(c, service.ErrInvalidCredential)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token, claims); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	resp := user.ToResponse()
	resp.ProfileImage = h.presignProfile(c, resp.ProfileImage)
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, req, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := updated.ToResponse()
	resp.ProfileImage = h.presignProfile(c, resp.ProfileImage)
	c.JSON(http.StatusOK, resp)
}

// UploadProfileImage godoc
// @Summary Replace the authenticated user's profile image
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param profile_image formData file true "Profile image"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/me/profile-image [put]
func (h *AuthHandler) UploadProfileImage(c *gin.Context) {
	fh, err := c.FormFile("profile_image")
	if err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, model.UpdateProfileRequest{}, fh)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := updated.ToResponse()
	resp.ProfileImage = h.presignProfile(c, resp.ProfileImage)
	c.JSON(http.StatusOK, resp)
}

// UpdateCredentials godoc
// @Summary Resubmit identity documents for verification
// @Description Replaces the stored verification selfie and/or valid ID and resets the badge to under_review.
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param verification_selfie formData file false "Verification selfie"
// @Param valid_id formData file false "Valid ID"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/me/credentials [put]
func (h *AuthHandler) UpdateCredentials(c *gin.Context) {
	selfie, _ := c.FormFile("verification_selfie")
	validID, _ := c.FormFile("valid_id")

	user := middleware.CurrentUser(c)
	updated, err := h.authService.UpdateCredentials(c.Request.Context(), user.ID, selfie, validID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := updated.ToResponse()
	resp.ProfileImage = h.presignProfile(c, resp.ProfileImage)
	c.JSON(http.StatusOK, resp)
}

// ChangePassword godoc
// @Summary Change password using the current password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ChangePasswordRequest true "Change password request"
// @Success 200 {object} model.SuccessResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.authService.ChangePassword(user.ID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Password changed successfully"})
}

// ForgotPassword godoc
// @Summary Request a password reset code by email
// @Description Always responds 200 with the same message, whether or not the email is registered.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} model.OTPSentResponse
// @Failure 429 {object} model.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.otpService.Request(service.NormalizeEmail(req.Email), model.OTPPurposePasswordReset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP godoc
// @Summary Check a verification code without consuming it
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.VerifyOTPRequest true "Verify OTP request"
// @Success 200 {object} model.VerifyOTPResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req model.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	purpose := model.OTPPurposePasswordReset
	if req.Purpose != "" {
		purpose = model.OTPPurpose(req.Purpose)
	}

	valid, err := h.otpService.Verify(service.NormalizeEmail(req.Email), req.Code, purpose)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := model.VerifyOTPResponse{Valid: valid, Message: "OTP is valid"}
	if !valid {
		resp.Message = "Invalid or expired OTP"
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary Reset password using a verification code
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} model.SuccessResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.otpService.ResetPassword(service.NormalizeEmail(req.Email), req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Password reset successfully"})
}

func (h *AuthHandler) presignProfile(c *gin.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := h.storage.PresignedURL(c.Request.Context(), key, time.Hour)
	if err != nil {
		return ""
	}
	return url
}
