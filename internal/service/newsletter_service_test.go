package service

import (
	"context"
	"testing"

	"Inkwell/internal/api/config"
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNewsletterFixture() (*MockSubscriberRepo, *MockPostRepo, NewsletterService) {
	subRepo := new(MockSubscriberRepo)
	postRepo := new(MockPostRepo)
	mailerClient := mailer.NewClient(config.NewsletterConfig{})
	svc := NewNewsletterService(subRepo, postRepo, mailerClient, "http://localhost:8080")
	return subRepo, postRepo, svc
}

func TestSubscribeIdempotent(t *testing.T) {
	subRepo, _, svc := newNewsletterFixture()

	subRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(sub *model.Subscriber) bool {
		return sub.Email == "reader@example.com" && sub.UnsubscribeToken != ""
	})).Return(true, nil).Once()
	created, err := svc.Subscribe(context.Background(), &dto.SubscribeDTO{Email: "reader@example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	// 重复订阅同一邮箱直接成功，不报冲突
	subRepo.On("Upsert", mock.Anything, mock.Anything).Return(false, nil).Once()
	created, err = svc.Subscribe(context.Background(), &dto.SubscribeDTO{Email: "reader@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	_, _, svc := newNewsletterFixture()
	_, err := svc.Subscribe(context.Background(), &dto.SubscribeDTO{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUnsubscribe(t *testing.T) {
	subRepo, _, svc := newNewsletterFixture()

	subRepo.On("DeleteByToken", mock.Anything, "tok-1").Return(true, nil)
	require.NoError(t, svc.Unsubscribe(context.Background(), "tok-1"))

	subRepo.On("DeleteByToken", mock.Anything, "tok-2").Return(false, nil)
	assert.ErrorIs(t, svc.Unsubscribe(context.Background(), "tok-2"), ErrSubscriberNotFound)

	assert.ErrorIs(t, svc.Unsubscribe(context.Background(), ""), ErrParamInvalid)
}

func TestSendDigestNothingNew(t *testing.T) {
	_, postRepo, svc := newNewsletterFixture()
	postRepo.On("ListApprovedSince", mock.Anything, mock.Anything).Return([]*model.Post{}, nil)

	posts, recipients, err := svc.SendDigest(context.Background())
	require.NoError(t, err)
	assert.Zero(t, posts)
	assert.Zero(t, recipients)
}

func TestSendDigestNoSubscribers(t *testing.T) {
	subRepo, postRepo, svc := newNewsletterFixture()
	postRepo.On("ListApprovedSince", mock.Anything, mock.Anything).Return([]*model.Post{
		{Title: "Hello", Slug: "hello"},
	}, nil)
	subRepo.On("ListAll", mock.Anything).Return([]*model.Subscriber{}, nil)

	posts, recipients, err := svc.SendDigest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, posts)
	assert.Zero(t, recipients)
}
