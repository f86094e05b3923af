package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/pkg/storage"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Shared mocks for service tests
// ============================================================================

type MockOTPStore struct {
	mock.Mock
}

func (m *MockOTPStore) Issue(otp *model.OTPCode) error {
	args := m.Called(otp)
	return args.Error(0)
}

func (m *MockOTPStore) FindConsumable(userID uuid.UUID, code string, purpose model.OTPPurpose) (*model.OTPCode, error) {
	args := m.Called(userID, code, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OTPCode), args.Error(1)
}

func (m *MockOTPStore) Consume(otpID uuid.UUID) error {
	args := m.Called(otpID)
	return args.Error(0)
}

func (m *MockOTPStore) InvalidateAll(userID uuid.UUID, purpose model.OTPPurpose) error {
	args := m.Called(userID, purpose)
	return args.Error(0)
}

func (m *MockOTPStore) CountRecent(userID uuid.UUID, purpose model.OTPPurpose, since time.Time) (int64, error) {
	args := m.Called(userID, purpose, since)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserStore) FindByID(id uuid.UUID) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) UpdateLastLogin(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserStore) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	args := m.Called(userID, hashedPassword)
	return args.Error(0)
}

func (m *MockUserStore) UpdateFields(userID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

type MockCodeSender struct {
	mock.Mock
}

func (m *MockCodeSender) SendOTP(toEmail, name, code string, expiryMinutes int, purpose string) error {
	args := m.Called(toEmail, name, code, expiryMinutes, purpose)
	return args.Error(0)
}

type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostStore) FindByID(id uuid.UUID) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostStore) List(filters model.PostFilters) ([]model.Post, int64, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostStore) UpdateFields(postID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(postID, updates)
	return args.Error(0)
}

func (m *MockPostStore) UpdateStatus(postID uuid.UUID, status model.PostStatus) error {
	args := m.Called(postID, status)
	return args.Error(0)
}

func (m *MockPostStore) Delete(postID uuid.UUID) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockPostStore) Counts(postID uuid.UUID) (int64, int64, int64, int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Get(2).(int64), args.Get(3).(int64), args.Error(4)
}

func (m *MockPostStore) UpsertReaction(reaction *model.PostReaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockPostStore) RemoveReaction(postID, userID uuid.UUID) error {
	args := m.Called(postID, userID)
	return args.Error(0)
}

func (m *MockPostStore) FindReaction(postID, userID uuid.UUID) (*model.PostReaction, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostReaction), args.Error(1)
}

type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentStore) FindByID(id uuid.UUID) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentStore) ListForPost(postID uuid.UUID, status model.CommentStatus, limit, offset int) ([]model.Comment, int64, error) {
	args := m.Called(postID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentStore) ListAll(status model.CommentStatus, limit, offset int) ([]model.Comment, int64, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentStore) UpdateContent(commentID uuid.UUID, content string) error {
	args := m.Called(commentID, content)
	return args.Error(0)
}

func (m *MockCommentStore) UpdateStatus(commentID uuid.UUID, status model.CommentStatus) error {
	args := m.Called(commentID, status)
	return args.Error(0)
}

// MockStorage implements storage.Storage for tests
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*storage.UploadResult, error) {
	args := m.Called(ctx, file, header, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) GetPublicURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

func (m *MockStorage) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}
