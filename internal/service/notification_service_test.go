package service

import (
	"context"
	"testing"
	"time"

	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, msg *model.Notification) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockNotificationRepo) ListByReceiver(ctx context.Context, receiver string, limit, offset int64) ([]*model.Notification, error) {
	args := m.Called(ctx, receiver, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, receiver string, msgID string) error {
	args := m.Called(ctx, receiver, msgID)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkAllAsRead(ctx context.Context, receiver string) error {
	args := m.Called(ctx, receiver)
	return args.Error(0)
}

func (m *MockNotificationRepo) GetUnreadCount(ctx context.Context, receiver string) (int64, error) {
	args := m.Called(ctx, receiver)
	return args.Get(0).(int64), args.Error(1)
}

func TestListNotifications(t *testing.T) {
	repo := new(MockNotificationRepo)
	svc := NewNotificationService(repo)
	reader := Principal{Email: "author@example.com"}

	repo.On("ListByReceiver", mock.Anything, reader.Email, int64(10), int64(0)).Return([]*model.Notification{
		{
			ID:        primitive.NewObjectID(),
			Receiver:  reader.Email,
			Type:      consts.EventPostLiked,
			PostSlug:  "hello-world",
			Content:   "你的文章《Hello World》收到了一个赞",
			CreatedAt: time.Now(),
		},
	}, nil)

	list, err := svc.ListNotifications(context.Background(), reader, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, consts.EventPostLiked, list[0].Type)
	assert.False(t, list[0].IsRead)
}

func TestMarkReadNotFound(t *testing.T) {
	repo := new(MockNotificationRepo)
	svc := NewNotificationService(repo)
	reader := Principal{Email: "author@example.com"}

	repo.On("MarkAsRead", mock.Anything, reader.Email, "bad-id").Return(mongo.ErrNoDocuments)
	assert.ErrorIs(t, svc.MarkRead(context.Background(), reader, "bad-id"), ErrNotificationNotFound)
}

func TestUnreadCount(t *testing.T) {
	repo := new(MockNotificationRepo)
	svc := NewNotificationService(repo)
	reader := Principal{Email: "author@example.com"}

	repo.On("GetUnreadCount", mock.Anything, reader.Email).Return(int64(7), nil)

	count, err := svc.UnreadCount(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count.Count)
}
