package service

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostService_Update_Ownership(t *testing.T) {
	postID := uuid.New()
	owner := &model.User{ID: uuid.New(), AccountType: model.AccountTypeBeneficiary}
	stranger := &model.User{ID: uuid.New(), AccountType: model.AccountTypeDonor}
	admin := &model.User{ID: uuid.New(), AccountType: model.AccountTypeAdmin}

	post := &model.Post{ID: postID, UserID: owner.ID, Title: "Old title"}

	t.Run("non-owner is rejected", func(t *testing.T) {
		postRepo := new(MockPostStore)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("FindByID", postID).Return(post, nil)

		title := "Hijacked"
		_, err := svc.Update(context.Background(), postID, stranger, model.UpdatePostRequest{Title: &title})
		assert.ErrorIs(t, err, ErrForbidden)
		postRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
	})

	t.Run("admin may edit any post", func(t *testing.T) {
		postRepo := new(MockPostStore)
		store := new(MockStorage)
		svc := NewPostService(postRepo, store)

		postRepo.On("FindByID", postID).Return(post, nil)
		postRepo.On("UpdateFields", postID, map[string]interface{}{"title": "Moderated title"}).Return(nil)
		postRepo.On("Counts", postID).Return(int64(0), int64(0), int64(0), int64(0), nil)
		postRepo.On("FindReaction", postID, admin.ID).Return(nil, gorm.ErrRecordNotFound)

		title := "Moderated title"
		_, err := svc.Update(context.Background(), postID, admin, model.UpdatePostRequest{Title: &title})
		require.NoError(t, err)
		postRepo.AssertExpectations(t)
	})
}

func TestPostService_Create_RejectsDisallowedMedia(t *testing.T) {
	postRepo := new(MockPostStore)
	store := new(MockStorage)
	svc := NewPostService(postRepo, store)

	req := model.CreatePostRequest{Type: "request", Title: "School supplies"}

	t.Run("executable posing as a photo", func(t *testing.T) {
		_, err := svc.Create(context.Background(), uuid.New(), req,
			[]*multipart.FileHeader{{Filename: "malware.exe"}}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("image in the video slot", func(t *testing.T) {
		_, err := svc.Create(context.Background(), uuid.New(), req,
			nil, []*multipart.FileHeader{{Filename: "photo.jpg"}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	postRepo.AssertNotCalled(t, "Create", mock.Anything)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostService_React(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()

	t.Run("defaults to like", func(t *testing.T) {
		postRepo := new(MockPostStore)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("FindByID", postID).Return(&model.Post{ID: postID}, nil)
		postRepo.On("UpsertReaction", mock.MatchedBy(func(r *model.PostReaction) bool {
			return r.PostID == postID && r.UserID == userID && r.Type == model.ReactionLike
		})).Return(nil)

		require.NoError(t, svc.React(postID, userID, ""))
		postRepo.AssertExpectations(t)
	})

	t.Run("unknown post", func(t *testing.T) {
		postRepo := new(MockPostStore)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("FindByID", postID).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.React(postID, userID, "love"), ErrNotFound)
	})
}

func TestPostService_Delete_CleansUpMedia(t *testing.T) {
	postID := uuid.New()
	owner := &model.User{ID: uuid.New()}
	post := &model.Post{
		ID:     postID,
		UserID: owner.ID,
		Photos: []model.PostPhoto{{PhotoURL: "posts/photos/a.jpg"}},
		Videos: []model.PostVideo{{VideoURL: "posts/videos/b.mp4"}},
	}

	postRepo := new(MockPostStore)
	store := new(MockStorage)
	svc := NewPostService(postRepo, store)

	postRepo.On("FindByID", postID).Return(post, nil)
	postRepo.On("Delete", postID).Return(nil)
	store.On("Delete", mock.Anything, "posts/photos/a.jpg").Return(nil)
	store.On("Delete", mock.Anything, "posts/videos/b.mp4").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), postID, owner))
	store.AssertExpectations(t)
}
