package service

import (
	"context"
	"testing"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPostFixture() (*MockPostRepo, *MockESRepo, *MockPublisher, PostService) {
	postRepo := new(MockPostRepo)
	esRepo := new(MockESRepo)
	publisher := new(MockPublisher)
	svc := NewPostService(postRepo, esRepo, publisher)
	return postRepo, esRepo, publisher, svc
}

var (
	owner = Principal{UserID: primitive.NewObjectID().Hex(), Email: "author@example.com", Roles: []string{consts.RoleUser}}
	admin = Principal{UserID: primitive.NewObjectID().Hex(), Email: "admin@example.com", Roles: []string{consts.RoleAdmin}}
	other = Principal{UserID: primitive.NewObjectID().Hex(), Email: "other@example.com", Roles: []string{consts.RoleUser}}
)

func validPostReq() *dto.PostBaseDTO {
	return &dto.PostBaseDTO{
		Title:    "Hello World",
		Content:  "<p>body</p>",
		Category: "tech",
		Language: "zh",
		Tags:     []string{"go", "go", ""},
	}
}

func TestCreatePostDerivesSlug(t *testing.T) {
	postRepo, _, _, svc := newPostFixture()

	postRepo.On("ExistsSlugExcept", mock.Anything, "hello-world", primitive.NilObjectID).Return(false, nil)
	postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.Slug == "hello-world" &&
			p.Status == consts.PostStatusDraft &&
			p.CreatedBy == owner.Email &&
			len(p.Tags) == 1
	})).Return(nil)

	post, err := svc.CreatePost(context.Background(), owner, validPostReq())
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, consts.PostStatusDraft, post.Status)
	postRepo.AssertExpectations(t)
}

func TestCreatePostSlugConflict(t *testing.T) {
	postRepo, _, _, svc := newPostFixture()
	postRepo.On("ExistsSlugExcept", mock.Anything, "hello-world", primitive.NilObjectID).Return(true, nil)

	_, err := svc.CreatePost(context.Background(), owner, validPostReq())
	assert.ErrorIs(t, err, ErrSlugConflict)
}

func TestCreatePostInvalidSlug(t *testing.T) {
	_, _, _, svc := newPostFixture()
	req := validPostReq()
	req.Slug = "Bad Slug!"

	_, err := svc.CreatePost(context.Background(), owner, req)
	assert.ErrorIs(t, err, ErrSlugInvalid)
}

func TestCreatePostMissingFields(t *testing.T) {
	_, _, _, svc := newPostFixture()
	req := validPostReq()
	req.Title = ""

	_, err := svc.CreatePost(context.Background(), owner, req)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUpdatePostKeepOwnSlug(t *testing.T) {
	postRepo, _, _, svc := newPostFixture()
	post := samplePost()
	post.Status = consts.PostStatusDraft
	req := validPostReq()
	req.Slug = post.Slug

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)
	// 查重排除自身文档，改回自己已有的 slug 不算冲突
	postRepo.On("ExistsSlugExcept", mock.Anything, post.Slug, post.ID).Return(false, nil)
	postRepo.On("Update", mock.Anything, post).Return(nil)

	updated, err := svc.UpdatePost(context.Background(), owner, post.Slug, req)
	require.NoError(t, err)
	assert.Equal(t, post.Slug, updated.Slug)
}

func TestUpdatePostForbiddenForStranger(t *testing.T) {
	postRepo, _, _, svc := newPostFixture()
	post := samplePost()
	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)

	_, err := svc.UpdatePost(context.Background(), other, post.Slug, validPostReq())
	assert.ErrorIs(t, err, ErrForbidden)
	postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdatePostAdminAllowed(t *testing.T) {
	postRepo, esRepo, _, svc := newPostFixture()
	post := samplePost()

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)
	postRepo.On("ExistsSlugExcept", mock.Anything, "hello-world", post.ID).Return(false, nil)
	postRepo.On("Update", mock.Anything, post).Return(nil)
	// 公开文章的内容变更需要同步搜索索引
	esRepo.On("IndexPost", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdatePost(context.Background(), admin, post.Slug, validPostReq())
	require.NoError(t, err)
	assert.Equal(t, post.CreatedBy, updated.CreatedBy)
	esRepo.AssertExpectations(t)
}

func TestTransitionPublish(t *testing.T) {
	postRepo, _, _, svc := newPostFixture()
	post := samplePost()
	post.Status = consts.PostStatusDraft
	// 标题为空也能流转：发布路径按现行约定不重新校验必填字段
	post.Title = ""

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)
	postRepo.On("UpdateStatus", mock.Anything, post.ID, consts.PostStatusPendingReview).Return(nil)

	updated, err := svc.TransitionPost(context.Background(), owner, post.Slug, consts.PostStatusPendingReview, "")
	require.NoError(t, err)
	assert.Equal(t, consts.PostStatusPendingReview, updated.Status)
}

func TestTransitionApprovePublishesEventAndIndexes(t *testing.T) {
	postRepo, esRepo, publisher, svc := newPostFixture()
	post := samplePost()
	post.Status = consts.PostStatusPendingReview

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)
	postRepo.On("UpdateStatus", mock.Anything, post.ID, consts.PostStatusApproved).Return(nil)
	esRepo.On("IndexPost", mock.Anything, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.Type == consts.EventPostApproved && evt.Actor == admin.Email
	})).Return()

	_, err := svc.TransitionPost(context.Background(), admin, post.Slug, consts.PostStatusApproved, "")
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestTransitionRejectCarriesNote(t *testing.T) {
	postRepo, _, publisher, svc := newPostFixture()
	post := samplePost()
	post.Status = consts.PostStatusPendingReview

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)
	postRepo.On("UpdateStatus", mock.Anything, post.ID, consts.PostStatusRejected).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.Type == consts.EventPostRejected && evt.Note == "内容不完整"
	})).Return()

	_, err := svc.TransitionPost(context.Background(), admin, post.Slug, consts.PostStatusRejected, "内容不完整")
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestTransitionIllegal(t *testing.T) {
	postRepo, _, _, svc := newPostFixture()
	post := samplePost()
	post.Status = consts.PostStatusDraft

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)

	// 草稿不能直接驳回
	_, err := svc.TransitionPost(context.Background(), admin, post.Slug, consts.PostStatusRejected, "")
	assert.ErrorIs(t, err, ErrStatusTransition)
	postRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionUnapproveDropsIndex(t *testing.T) {
	postRepo, esRepo, _, svc := newPostFixture()
	post := samplePost()

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)
	postRepo.On("UpdateStatus", mock.Anything, post.ID, consts.PostStatusPrivate).Return(nil)
	esRepo.On("DeletePost", mock.Anything, post.ID.Hex()).Return(nil)

	_, err := svc.TransitionPost(context.Background(), owner, post.Slug, consts.PostStatusPrivate, "")
	require.NoError(t, err)
	esRepo.AssertExpectations(t)
}

func TestDeletePostSoft(t *testing.T) {
	postRepo, esRepo, _, svc := newPostFixture()
	post := samplePost()

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)
	postRepo.On("UpdateStatus", mock.Anything, post.ID, consts.PostStatusDeleted).Return(nil)
	esRepo.On("DeletePost", mock.Anything, post.ID.Hex()).Return(nil)

	err := svc.DeletePost(context.Background(), owner, post.Slug)
	require.NoError(t, err)
	postRepo.AssertExpectations(t)
}

func TestGetPostHidesNonPublicFromStranger(t *testing.T) {
	postRepo, _, _, svc := newPostFixture()
	post := samplePost()
	post.Status = consts.PostStatusDraft

	postRepo.On("GetBySlug", mock.Anything, post.Slug).Return(post, nil)

	_, err := svc.GetPost(context.Background(), other, post.Slug)
	assert.ErrorIs(t, err, ErrPostNotFound)

	got, err := svc.GetPost(context.Background(), owner, post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.Slug, got.Slug)
}

func TestListAuthorPostsVisibility(t *testing.T) {
	postRepo, _, _, svc := newPostFixture()

	// 陌生访客只能看到 approved
	postRepo.On("ListByAuthor", mock.Anything, owner.Email, true, 1, 10).Return([]*model.Post{}, int64(0), nil).Once()
	_, err := svc.ListAuthorPosts(context.Background(), other, owner.Email, 1, 10)
	require.NoError(t, err)

	// 作者本人能看到全部状态
	postRepo.On("ListByAuthor", mock.Anything, owner.Email, false, 1, 10).Return([]*model.Post{}, int64(0), nil).Once()
	_, err = svc.ListAuthorPosts(context.Background(), owner, owner.Email, 1, 10)
	require.NoError(t, err)

	postRepo.AssertExpectations(t)
}

func TestSearchPostsRequiresKeyword(t *testing.T) {
	_, _, _, svc := newPostFixture()
	_, err := svc.SearchPosts(context.Background(), "", 1, 10)
	assert.ErrorIs(t, err, ErrParamInvalid)
}
