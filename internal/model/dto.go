package model

import "github.com/google/uuid"

// ========== Common DTOs ==========

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// ========== Auth DTOs ==========

// RegisterRequest carries the non-file fields of the multipart register
// form; images are pulled from the form separately.
type RegisterRequest struct {
	FirstName   string `form:"first_name" binding:"required,max=100"`
	LastName    string `form:"last_name" binding:"required,max=100"`
	Email       string `form:"email" binding:"required,email"`
	Password    string `form:"password" binding:"required,min=6"`
	Address     string `form:"address"`
	Age         *int   `form:"age" binding:"omitempty,gte=1,lte=120"`
	Phone       string `form:"number"`
	AccountType string `form:"account_type" binding:"omitempty,oneof=beneficiary donor volunteer verified_organization"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Address   *string `json:"address" binding:"omitempty,max=500"`
	Age       *int    `json:"age" binding:"omitempty,gte=1,lte=120"`
	Phone     *string `json:"number" binding:"omitempty,max=30"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ========== OTP DTOs ==========

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"otp_code" binding:"required"`
	Purpose string `json:"otp_type" binding:"omitempty,oneof=email_verification password_reset login"`
}

type VerifyOTPResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"otp_code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type OTPSentResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expires_in"` // seconds until code expires
}

// ========== Credential DTOs ==========

type CredentialsResponse struct {
	Credentials map[string]string `json:"credentials"`
}

type FileURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// ========== Post DTOs ==========

// CreatePostRequest carries the non-file fields of the multipart post
// form; photos/videos come from the form files.
type CreatePostRequest struct {
	Type        string   `form:"post_type" binding:"required,oneof=donation request"`
	Title       string   `form:"title" binding:"required,max=255"`
	Description string   `form:"description"`
	Address     string   `form:"address"`
	Latitude    *float64 `form:"latitude"`
	Longitude   *float64 `form:"longitude"`
}

type UpdatePostRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Address     *string  `json:"address" binding:"omitempty,max=500"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type PostFilters struct {
	Type   string     `form:"post_type" binding:"omitempty,oneof=donation request"`
	Status string     `form:"status" binding:"omitempty,oneof=pending active closed rejected"`
	UserID *uuid.UUID `form:"user_id"`
	Limit  int        `form:"limit,default=20" binding:"omitempty,gte=1,lte=100"`
	Offset int        `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// PostResponse is a post expanded with author info, media URLs and counts
type PostResponse struct {
	Post
	AuthorFirstName    string        `json:"first_name"`
	AuthorLastName     string        `json:"last_name"`
	AuthorProfileImage string        `json:"author_profile_image"`
	Photos             []string      `json:"photos"`
	Videos             []string      `json:"videos"`
	ReactionCount      int64         `json:"reaction_count"`
	DonationCount      int64         `json:"donator_count"`
	SupporterCount     int64         `json:"supporter_count"`
	CommentCount       int64         `json:"comment_count"`
	UserReaction       *ReactionType `json:"user_reaction"`
}

type PostListResponse struct {
	Posts  []PostResponse `json:"posts"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type ReactionRequest struct {
	Type string `json:"reaction_type" binding:"omitempty,oneof=like love care support"`
}

type DonateRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Message string  `json:"message"`
}

type UpdateDonationRequest struct {
	Amount  *float64 `json:"amount" binding:"omitempty,gt=0"`
	Message *string  `json:"message"`
}

type DonationFilters struct {
	PostID *uuid.UUID `form:"post_id"`
	UserID *uuid.UUID `form:"user_id"`
	Status string     `form:"verification_status" binding:"omitempty,oneof=pending ongoing fulfilled rejected"`
	Limit  int        `form:"limit,default=50" binding:"omitempty,gte=1,lte=100"`
	Offset int        `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// DonationResponse is a donation expanded with donor info and proof URLs
type DonationResponse struct {
	Donation
	DonorFirstName string   `json:"first_name"`
	DonorLastName  string   `json:"last_name"`
	PostTitle      string   `json:"post_title"`
	Proofs         []string `json:"proofs"`
}

type DonationListResponse struct {
	Donations []DonationResponse `json:"donators"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

type SupportRequest struct {
	Type    string `json:"support_type" binding:"omitempty,oneof=share volunteer advocate other"`
	Message string `json:"message"`
}

type UpdateSupporterRequest struct {
	Type    *string `json:"support_type" binding:"omitempty,oneof=share volunteer advocate other"`
	Message *string `json:"message"`
}

type SupporterFilters struct {
	PostID *uuid.UUID `form:"post_id"`
	UserID *uuid.UUID `form:"user_id"`
	Type   string     `form:"support_type" binding:"omitempty,oneof=share volunteer advocate other"`
	Limit  int        `form:"limit,default=50" binding:"omitempty,gte=1,lte=100"`
	Offset int        `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// SupporterResponse is a supporter expanded with user info and proof URLs
type SupporterResponse struct {
	Supporter
	SupporterFirstName string   `json:"first_name"`
	SupporterLastName  string   `json:"last_name"`
	PostTitle          string   `json:"post_title"`
	Proofs             []string `json:"proofs"`
}

type SupporterListResponse struct {
	Supporters []SupporterResponse `json:"supporters"`
	Total      int64               `json:"total"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

// ========== Comment DTOs ==========

type CreateCommentRequest struct {
	Content  string     `json:"content" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is a comment expanded with author info
type CommentResponse struct {
	Comment
	AuthorFirstName    string `json:"first_name"`
	AuthorLastName     string `json:"last_name"`
	AuthorProfileImage string `json:"author_profile_image"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ========== Chat DTOs ==========

type CreateChatRequest struct {
	Type           string      `json:"type" binding:"omitempty,oneof=private group"`
	ParticipantIDs []uuid.UUID `json:"participant_ids" binding:"required,min=1"`
}

type SendMessageRequest struct {
	Content string `form:"content"`
}

type AddParticipantRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// ChatResponse is a chat expanded with its last message and unread count
type ChatResponse struct {
	Chat
	LastMessage *Message `json:"last_message"`
	UnreadCount int64    `json:"unread_count"`
}

type MessageListResponse struct {
	Messages []Message `json:"messages"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// ========== Admin DTOs ==========

type UpdateBadgeRequest struct {
	Badge string `json:"badge" binding:"required,oneof=under_review verified rejected"`
}

type UpdateAccountTypeRequest struct {
	AccountType string `json:"account_type" binding:"required,oneof=beneficiary donor volunteer verified_organization admin"`
}

type UpdatePostStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active closed rejected"`
}

type UpdateCommentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=visible hidden deleted"`
}

type UpdateDonationStatusRequest struct {
	Status string `json:"verification_status" binding:"required,oneof=pending ongoing fulfilled rejected"`
}

type AdminUserFilters struct {
	AccountType string `form:"account_type" binding:"omitempty,oneof=beneficiary donor volunteer verified_organization admin"`
	Badge       string `form:"badge" binding:"omitempty,oneof=under_review verified rejected"`
	Limit       int    `form:"limit,default=50" binding:"omitempty,gte=1,lte=100"`
	Offset      int    `form:"offset,default=0" binding:"omitempty,gte=0"`
}

type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// UserStats aggregates user counts by role and review state
type UserStats struct {
	TotalUsers          int64 `json:"total_users"`
	Beneficiaries       int64 `json:"beneficiaries"`
	Donors              int64 `json:"donors"`
	Volunteers          int64 `json:"volunteers"`
	Organizations       int64 `json:"organizations"`
	VerifiedUsers       int64 `json:"verified_users"`
	PendingVerification int64 `json:"pending_verification"`
}

type PostStats struct {
	TotalPosts    int64 `json:"total_posts"`
	DonationPosts int64 `json:"donation_posts"`
	RequestPosts  int64 `json:"request_posts"`
	ActivePosts   int64 `json:"active_posts"`
	ClosedPosts   int64 `json:"closed_posts"`
	PendingPosts  int64 `json:"pending_posts"`
}

type DonationStats struct {
	TotalDonations     int64   `json:"total_donations"`
	TotalAmount        float64 `json:"total_amount"`
	AverageAmount      float64 `json:"average_amount"`
	PendingDonations   int64   `json:"pending_donations"`
	OngoingDonations   int64   `json:"ongoing_donations"`
	FulfilledDonations int64   `json:"fulfilled_donations"`
}

type SupporterStats struct {
	TotalSupporters int64 `json:"total_supporters"`
	Shares          int64 `json:"shares"`
	Volunteers      int64 `json:"volunteers"`
	Advocates       int64 `json:"advocates"`
	Others          int64 `json:"others"`
}

type CommentStats struct {
	TotalComments   int64 `json:"total_comments"`
	VisibleComments int64 `json:"visible_comments"`
	HiddenComments  int64 `json:"hidden_comments"`
	DeletedComments int64 `json:"deleted_comments"`
}

type ChatStats struct {
	TotalChats    int64 `json:"total_chats"`
	PrivateChats  int64 `json:"private_chats"`
	GroupChats    int64 `json:"group_chats"`
	TotalMessages int64 `json:"total_messages"`
}

// Statistics is the platform-wide aggregate served to the admin dashboard
type Statistics struct {
	Users      UserStats      `json:"users"`
	Posts      PostStats      `json:"posts"`
	Donations  DonationStats  `json:"donations"`
	Supporters SupporterStats `json:"supporters"`
	Comments   CommentStats   `json:"comments"`
	Chats      ChatStats      `json:"chats"`
}

// ActivityItem is one entry of the recent-activity feed
type ActivityItem struct {
	Kind      string    `json:"kind"` // user_registered | post_created | donation_pledged | comment_posted
	Actor     string    `json:"actor"`
	Subject   string    `json:"subject"`
	CreatedAt string    `json:"created_at"`
	RefID     uuid.UUID `json:"ref_id"`
}

type DashboardResponse struct {
	Statistics Statistics     `json:"statistics"`
	Recent     []ActivityItem `json:"recent_activity"`
}
