package repository

import (
	"context"

	"Inkwell/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	Create(ctx context.Context, msg *model.Notification) error
	ListByReceiver(ctx context.Context, receiver string, limit, offset int64) ([]*model.Notification, error)
	MarkAsRead(ctx context.Context, receiver string, msgID string) error
	MarkAllAsRead(ctx context.Context, receiver string) error
	GetUnreadCount(ctx context.Context, receiver string) (int64, error)
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notifications"),
	}
}

// Create 插入新通知
func (s *notificationRepoImpl) Create(ctx context.Context, msg *model.Notification) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// ListByReceiver 分页获取用户的通知列表 (按时间倒序)
func (s *notificationRepoImpl) ListByReceiver(ctx context.Context, receiver string, limit, offset int64) ([]*model.Notification, error) {
	filter := bson.M{"receiver": receiver}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*model.Notification
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkAsRead 标记单条通知为已读
func (s *notificationRepoImpl) MarkAsRead(ctx context.Context, receiver string, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return mongo.ErrInvalidIndexValue
	}
	filter := bson.M{"_id": objectID, "receiver": receiver}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllAsRead 一键清除未读
func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, receiver string) error {
	filter := bson.M{"receiver": receiver, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

// GetUnreadCount 获取用户的未读通知总数
func (s *notificationRepoImpl) GetUnreadCount(ctx context.Context, receiver string) (int64, error) {
	filter := bson.M{"receiver": receiver, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}
