package repository

import (
	"context"
	"time"

	"Inkwell/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MonthlyStatRepo interface {
	IncViews(ctx context.Context, postID primitive.ObjectID, month string) error
	IncLikes(ctx context.Context, postID primitive.ObjectID, month string, delta int64) error
	GetByPostMonth(ctx context.Context, postID primitive.ObjectID, month string) (*model.MonthlyStat, error)
	ListByPost(ctx context.Context, postID primitive.ObjectID, limit int64) ([]*model.MonthlyStat, error)
}

type monthlyStatRepoImpl struct {
	col *mongo.Collection
}

func NewMonthlyStatRepo(db *mongo.Database) MonthlyStatRepo {
	return &monthlyStatRepoImpl{
		col: db.Collection("monthly_stats"),
	}
}

// IncViews 月度聚合行懒创建：首个事件 upsert 出计数为 1 的新行，之后只做 $inc
func (s *monthlyStatRepoImpl) IncViews(ctx context.Context, postID primitive.ObjectID, month string) error {
	return s.inc(ctx, postID, month, bson.M{"views": 1})
}

// IncLikes delta 为 ±1。取消点赞的自减不做下限保护，
// 并发竞争下报表口径允许出现负值。
func (s *monthlyStatRepoImpl) IncLikes(ctx context.Context, postID primitive.ObjectID, month string, delta int64) error {
	return s.inc(ctx, postID, month, bson.M{"likes": delta})
}

func (s *monthlyStatRepoImpl) inc(ctx context.Context, postID primitive.ObjectID, month string, counters bson.M) error {
	filter := bson.M{"post_id": postID, "month": month}
	update := bson.M{
		"$inc":         counters,
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}
	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (s *monthlyStatRepoImpl) GetByPostMonth(ctx context.Context, postID primitive.ObjectID, month string) (*model.MonthlyStat, error) {
	var stat model.MonthlyStat
	err := s.col.FindOne(ctx, bson.M{"post_id": postID, "month": month}).Decode(&stat)
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// ListByPost 按月份倒序返回最近的聚合行
func (s *monthlyStatRepoImpl) ListByPost(ctx context.Context, postID primitive.ObjectID, limit int64) ([]*model.MonthlyStat, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "month", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var stats []*model.MonthlyStat
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
