package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/pkg/storage"
	"gorm.io/gorm"
)

// AdminUserStore is the user persistence surface moderation needs
type AdminUserStore interface {
	FindByID(id uuid.UUID) (*model.User, error)
	UpdateFields(userID uuid.UUID, updates map[string]interface{}) error
	List(accountType model.AccountType, badge model.Badge, limit, offset int) ([]model.User, int64, error)
	ListVerificationRequests(limit, offset int) ([]model.User, int64, error)
}

// StatsStore runs the aggregate dashboard queries
type StatsStore interface {
	Statistics() (*model.Statistics, error)
	RecentActivity(limit int) ([]model.ActivityItem, error)
}

// AdminService implements the moderation panel: user review, content
// moderation and platform statistics
type AdminService struct {
	userRepo     AdminUserStore
	postRepo     PostStore
	donationRepo DonationStore
	commentRepo  CommentStore
	statsRepo    StatsStore
	storage      storage.Storage
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo AdminUserStore, postRepo PostStore, donationRepo DonationStore, commentRepo CommentStore, statsRepo StatsStore, store storage.Storage) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		postRepo:     postRepo,
		donationRepo: donationRepo,
		commentRepo:  commentRepo,
		statsRepo:    statsRepo,
		storage:      store,
	}
}

// ListUsers returns users filtered by account type and badge
func (s *AdminService) ListUsers(ctx context.Context, filters model.AdminUserFilters) (*model.UserListResponse, error) {
	users, total, err := s.userRepo.List(
		model.AccountType(filters.AccountType),
		model.Badge(filters.Badge),
		filters.Limit, filters.Offset)
	if err != nil {
		return nil, err
	}
	return s.userList(ctx, users, total, filters.Limit, filters.Offset), nil
}

// ListVerificationRequests returns users awaiting badge review, oldest
// first so nobody waits forever
func (s *AdminService) ListVerificationRequests(ctx context.Context, limit, offset int) (*model.UserListResponse, error) {
	users, total, err := s.userRepo.ListVerificationRequests(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.userList(ctx, users, total, limit, offset), nil
}

// UpdateBadge sets the verification outcome for a user
func (s *AdminService) UpdateBadge(userID uuid.UUID, badge model.Badge) (*model.User, error) {
	if _, err := s.findUser(userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"badge": badge}); err != nil {
		return nil, err
	}
	log.Printf("✅ Badge updated: user %s -> %s", userID, badge)
	return s.findUser(userID)
}

// UpdateAccountType changes a user's role
func (s *AdminService) UpdateAccountType(userID uuid.UUID, accountType model.AccountType) (*model.User, error) {
	if _, err := s.findUser(userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"account_type": accountType}); err != nil {
		return nil, err
	}
	log.Printf("✅ Account type updated: user %s -> %s", userID, accountType)
	return s.findUser(userID)
}

// UpdatePostStatus moves a post through its lifecycle
func (s *AdminService) UpdatePostStatus(postID uuid.UUID, status model.PostStatus) error {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.postRepo.UpdateStatus(postID, status)
}

// UpdateDonationStatus advances a donation's verification state
func (s *AdminService) UpdateDonationStatus(donationID uuid.UUID, status model.DonationStatus) error {
	if _, err := s.donationRepo.FindByID(donationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.donationRepo.UpdateStatus(donationID, status)
}

// UpdateCommentStatus changes a comment's visibility
func (s *AdminService) UpdateCommentStatus(commentID uuid.UUID, status model.CommentStatus) error {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.commentRepo.UpdateStatus(commentID, status)
}

// ListComments returns comments across all posts for moderation
func (s *AdminService) ListComments(ctx context.Context, status model.CommentStatus, limit, offset int) (*model.CommentListResponse, error) {
	comments, total, err := s.commentRepo.ListAll(status, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]model.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, model.CommentResponse{
			Comment:            comments[i],
			AuthorFirstName:    comments[i].User.FirstName,
			AuthorLastName:     comments[i].User.LastName,
			AuthorProfileImage: presign(ctx, s.storage, comments[i].User.ProfileImage, fileURLExpiry),
		})
	}

	return &model.CommentListResponse{
		Comments: items,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// Statistics returns platform-wide aggregate counts
func (s *AdminService) Statistics() (*model.Statistics, error) {
	return s.statsRepo.Statistics()
}

// Dashboard bundles statistics with the recent activity feed
func (s *AdminService) Dashboard(recentLimit int) (*model.DashboardResponse, error) {
	stats, err := s.statsRepo.Statistics()
	if err != nil {
		return nil, err
	}
	recent, err := s.statsRepo.RecentActivity(recentLimit)
	if err != nil {
		return nil, err
	}
	return &model.DashboardResponse{
		Statistics: *stats,
		Recent:     recent,
	}, nil
}

func (s *AdminService) findUser(userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AdminService) userList(ctx context.Context, users []model.User, total int64, limit, offset int) *model.UserListResponse {
	items := make([]model.UserResponse, 0, len(users))
	for i := range users {
		resp := users[i].ToResponse()
		resp.ProfileImage = presign(ctx, s.storage, resp.ProfileImage, fileURLExpiry)
		items = append(items, resp)
	}
	return &model.UserListResponse{
		Users:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
