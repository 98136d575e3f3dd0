package repository

import (
	"context"
	"time"

	"Inkwell/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubscriberRepo interface {
	Upsert(ctx context.Context, sub *model.Subscriber) (bool, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	ListAll(ctx context.Context) ([]*model.Subscriber, error)
	Count(ctx context.Context) (int64, error)
}

type subscriberRepoImpl struct {
	col *mongo.Collection
}

func NewSubscriberRepo(db *mongo.Database) SubscriberRepo {
	return &subscriberRepoImpl{
		col: db.Collection("subscribers"),
	}
}

// Upsert 幂等订阅：邮箱已存在时不做任何变更。返回是否为新增。
func (s *subscriberRepoImpl) Upsert(ctx context.Context, sub *model.Subscriber) (bool, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"email":             sub.Email,
		"unsubscribe_token": sub.UnsubscribeToken,
		"subscribed_at":     time.Now(),
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"email": sub.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func (s *subscriberRepoImpl) DeleteByToken(ctx context.Context, token string) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"unsubscribe_token": token})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *subscriberRepoImpl) ListAll(ctx context.Context) ([]*model.Subscriber, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var subs []*model.Subscriber
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *subscriberRepoImpl) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}
