package repository

import (
	"context"
	"time"

	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	ExistsSlugExcept(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error)
	Update(ctx context.Context, post *model.Post) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	IncViews(ctx context.Context, id primitive.ObjectID) (bool, error)
	IncLikes(ctx context.Context, id primitive.ObjectID) (bool, error)
	DecLikesIfPositive(ctx context.Context, id primitive.ObjectID) (bool, error)
	ListByStatus(ctx context.Context, status string, page, pageSize int) ([]*model.Post, int64, error)
	ListByAuthor(ctx context.Context, email string, publicOnly bool, page, pageSize int) ([]*model.Post, int64, error)
	ListApprovedSince(ctx context.Context, since time.Time) ([]*model.Post, error)
	ListApproved(ctx context.Context) ([]*model.Post, error)
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection("posts"),
	}
}

// notDeleted 软删除的文章对所有读路径不可见
var notDeleted = bson.M{"$ne": consts.PostStatusDeleted}

func (s *postRepoImpl) Create(ctx context.Context, post *model.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	result, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

func (s *postRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id, "status": notDeleted}).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"slug": slug, "status": notDeleted}).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ExistsSlugExcept 检查 slug 是否已被其他文章占用。编辑场景下排除自身文档。
func (s *postRepoImpl) ExistsSlugExcept(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	count, err := s.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *postRepoImpl) Update(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"slug":       post.Slug,
		"title":      post.Title,
		"content":    post.Content,
		"excerpt":    post.Excerpt,
		"category":   post.Category,
		"language":   post.Language,
		"tags":       post.Tags,
		"cover_url":  post.CoverURL,
		"updated_at": post.UpdatedAt,
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": post.ID, "status": notDeleted}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *postRepoImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id, "status": notDeleted}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *postRepoImpl) IncViews(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": notDeleted},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (s *postRepoImpl) IncLikes(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": notDeleted},
		bson.M{"$inc": bson.M{"likes": 1}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// DecLikesIfPositive 带条件的原子自减：likes > 0 才会命中，
// 并发竞争下计数也不会降到 0 以下。未命中返回 false。
func (s *postRepoImpl) DecLikesIfPositive(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": notDeleted, "likes": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"likes": -1}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (s *postRepoImpl) ListByStatus(ctx context.Context, status string, page, pageSize int) ([]*model.Post, int64, error) {
	filter := bson.M{"status": status}
	return s.findPage(ctx, filter, page, pageSize)
}

func (s *postRepoImpl) ListByAuthor(ctx context.Context, email string, publicOnly bool, page, pageSize int) ([]*model.Post, int64, error) {
	filter := bson.M{"created_by": email, "status": notDeleted}
	if publicOnly {
		filter["status"] = consts.PostStatusApproved
	}
	return s.findPage(ctx, filter, page, pageSize)
}

func (s *postRepoImpl) ListApprovedSince(ctx context.Context, since time.Time) ([]*model.Post, error) {
	filter := bson.M{"status": consts.PostStatusApproved, "updated_at": bson.M{"$gte": since}}
	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListApproved 站点地图用，只取 slug 与更新时间
func (s *postRepoImpl) ListApproved(ctx context.Context) ([]*model.Post, error) {
	filter := bson.M{"status": consts.PostStatusApproved}
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetProjection(bson.M{"slug": 1, "updated_at": 1})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postRepoImpl) findPage(ctx context.Context, filter bson.M, page, pageSize int) ([]*model.Post, int64, error) {
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
