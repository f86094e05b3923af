package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create_ReplyValidation(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()
	parentID := uuid.New()

	t.Run("reply to a comment on another post is rejected", func(t *testing.T) {
		commentRepo := new(MockCommentStore)
		postRepo := new(MockPostStore)
		svc := NewCommentService(commentRepo, postRepo, new(MockStorage))

		postRepo.On("FindByID", postID).Return(&model.Post{ID: postID}, nil)
		commentRepo.On("FindByID", parentID).Return(&model.Comment{
			ID:     parentID,
			PostID: uuid.New(), // different post
			Status: model.CommentStatusVisible,
		}, nil)

		_, err := svc.Create(context.Background(), postID, userID, model.CreateCommentRequest{
			Content:  "reply",
			ParentID: &parentID,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		commentRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("reply to a deleted comment is rejected", func(t *testing.T) {
		commentRepo := new(MockCommentStore)
		postRepo := new(MockPostStore)
		svc := NewCommentService(commentRepo, postRepo, new(MockStorage))

		postRepo.On("FindByID", postID).Return(&model.Post{ID: postID}, nil)
		commentRepo.On("FindByID", parentID).Return(&model.Comment{
			ID:     parentID,
			PostID: postID,
			Status: model.CommentStatusDeleted,
		}, nil)

		_, err := svc.Create(context.Background(), postID, userID, model.CreateCommentRequest{
			Content:  "reply",
			ParentID: &parentID,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCommentService_Delete_IsSoft(t *testing.T) {
	commentID := uuid.New()
	author := &model.User{ID: uuid.New()}
	comment := &model.Comment{ID: commentID, UserID: author.ID, Status: model.CommentStatusVisible}

	t.Run("author soft-deletes", func(t *testing.T) {
		commentRepo := new(MockCommentStore)
		svc := NewCommentService(commentRepo, new(MockPostStore), new(MockStorage))

		commentRepo.On("FindByID", commentID).Return(comment, nil)
		commentRepo.On("UpdateStatus", commentID, model.CommentStatusDeleted).Return(nil)

		require.NoError(t, svc.Delete(commentID, author))
		commentRepo.AssertExpectations(t)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		commentRepo := new(MockCommentStore)
		svc := NewCommentService(commentRepo, new(MockPostStore), new(MockStorage))

		commentRepo.On("FindByID", commentID).Return(comment, nil)

		stranger := &model.User{ID: uuid.New()}
		assert.ErrorIs(t, svc.Delete(commentID, stranger), ErrForbidden)
		commentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("admin may delete any comment", func(t *testing.T) {
		commentRepo := new(MockCommentStore)
		svc := NewCommentService(commentRepo, new(MockPostStore), new(MockStorage))

		commentRepo.On("FindByID", commentID).Return(comment, nil)
		commentRepo.On("UpdateStatus", commentID, model.CommentStatusDeleted).Return(nil)

		admin := &model.User{ID: uuid.New(), AccountType: model.AccountTypeAdmin}
		require.NoError(t, svc.Delete(commentID, admin))
	})
}

func TestCredentialService_Access(t *testing.T) {
	owner := &model.User{ID: uuid.New()}
	target := &model.User{
		ID:                 owner.ID,
		VerificationSelfie: "credentials/selfie.jpg",
		ValidID:            "credentials/id.jpg",
	}

	t.Run("stranger is rejected without touching storage", func(t *testing.T) {
		userRepo := new(MockUserStore)
		store := new(MockStorage)
		svc := NewCredentialService(userRepo, store)

		stranger := &model.User{ID: uuid.New()}
		_, err := svc.Credentials(context.Background(), stranger, owner.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		store.AssertNotCalled(t, "PresignedURL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner gets presigned links", func(t *testing.T) {
		userRepo := new(MockUserStore)
		store := new(MockStorage)
		svc := NewCredentialService(userRepo, store)

		userRepo.On("FindByID", owner.ID).Return(target, nil)
		store.On("PresignedURL", mock.Anything, "credentials/selfie.jpg", credentialURLExpiry).
			Return("https://minio/selfie?sig", nil)
		store.On("PresignedURL", mock.Anything, "credentials/id.jpg", credentialURLExpiry).
			Return("https://minio/id?sig", nil)

		resp, err := svc.Credentials(context.Background(), owner, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://minio/selfie?sig", resp.Credentials["verification_selfie"])
		assert.Equal(t, "https://minio/id?sig", resp.Credentials["valid_id"])
		assert.NotContains(t, resp.Credentials, "profile_image")
	})

	t.Run("admin may view anyone", func(t *testing.T) {
		userRepo := new(MockUserStore)
		store := new(MockStorage)
		svc := NewCredentialService(userRepo, store)

		admin := &model.User{ID: uuid.New(), AccountType: model.AccountTypeAdmin}
		userRepo.On("FindByID", owner.ID).Return(target, nil)
		store.On("PresignedURL", mock.Anything, mock.Anything, credentialURLExpiry).
			Return("https://minio/doc?sig", nil)

		_, err := svc.Credentials(context.Background(), admin, owner.ID)
		require.NoError(t, err)
	})
}
