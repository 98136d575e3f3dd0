package service

import (
	"context"
	log "log/slog"
	"time"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/events"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventPublisher 领域事件出口，生产实现为 events.Producer
type EventPublisher interface {
	Publish(ctx context.Context, evt *events.Event)
}

// EngageService 浏览/点赞计数。asOf 由调用方传入，月度归档不依赖系统时钟。
type EngageService interface {
	RecordView(ctx context.Context, ref string, asOf time.Time) (*dto.EngageResultDTO, error)
	RecordLike(ctx context.Context, actor string, ref string, asOf time.Time) (*dto.EngageResultDTO, error)
	RecordUnlike(ctx context.Context, ref string, asOf time.Time) (*dto.EngageResultDTO, error)
	GetMonthlyStats(ctx context.Context, ref string, months int64) ([]*dto.MonthlyStatDTO, error)
}

type engageServiceImpl struct {
	postRepo  repository.PostRepo
	statRepo  repository.MonthlyStatRepo
	publisher EventPublisher
}

func NewEngageService(postRepo repository.PostRepo, statRepo repository.MonthlyStatRepo, publisher EventPublisher) EngageService {
	return &engageServiceImpl{
		postRepo:  postRepo,
		statRepo:  statRepo,
		publisher: publisher,
	}
}

func (s *engageServiceImpl) resolvePost(ctx context.Context, ref string) (*model.Post, error) {
	return findPostByRef(ctx, s.postRepo, ref)
}

func (s *engageServiceImpl) RecordView(ctx context.Context, ref string, asOf time.Time) (*dto.EngageResultDTO, error) {
	post, err := s.resolvePost(ctx, ref)
	if err != nil {
		return nil, err
	}

	matched, err := s.postRepo.IncViews(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrPostNotFound
	}

	s.bumpMonthly(ctx, post.ID, asOf, func(month string) error {
		return s.statRepo.IncViews(ctx, post.ID, month)
	})
	s.invalidateCaches(ctx, post)

	return &dto.EngageResultDTO{Likes: post.Likes, Views: post.Views + 1}, nil
}

func (s *engageServiceImpl) RecordLike(ctx context.Context, actor string, ref string, asOf time.Time) (*dto.EngageResultDTO, error) {
	post, err := s.resolvePost(ctx, ref)
	if err != nil {
		return nil, err
	}

	matched, err := s.postRepo.IncLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrPostNotFound
	}

	s.bumpMonthly(ctx, post.ID, asOf, func(month string) error {
		return s.statRepo.IncLikes(ctx, post.ID, month, 1)
	})
	s.invalidateCaches(ctx, post)

	s.publisher.Publish(ctx, &events.Event{
		Type:      consts.EventPostLiked,
		PostID:    post.ID.Hex(),
		PostSlug:  post.Slug,
		PostTitle: post.Title,
		Author:    post.CreatedBy,
		Actor:     actor,
	})

	return &dto.EngageResultDTO{Likes: post.Likes + 1, Views: post.Views}, nil
}

func (s *engageServiceImpl) RecordUnlike(ctx context.Context, ref string, asOf time.Time) (*dto.EngageResultDTO, error) {
	post, err := s.resolvePost(ctx, ref)
	if err != nil {
		return nil, err
	}

	// 过滤条件带 likes > 0，主计数在并发下也不会为负；
	// 未命中即视为已到下界
	modified, err := s.postRepo.DecLikesIfPositive(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if !modified {
		return nil, ErrLikesAtZero
	}

	// 报表口径的月度自减不做下限保护
	s.bumpMonthly(ctx, post.ID, asOf, func(month string) error {
		return s.statRepo.IncLikes(ctx, post.ID, month, -1)
	})
	s.invalidateCaches(ctx, post)

	return &dto.EngageResultDTO{Likes: post.Likes - 1, Views: post.Views}, nil
}

// bumpMonthly 月度聚合是主计数之后的第二次独立写入，二者之间没有跨文档事务。
// 写入失败或中途宕机只会让聚合相对主计数少计，按既定口径接受，不回滚不重试。
func (s *engageServiceImpl) bumpMonthly(ctx context.Context, postID primitive.ObjectID, asOf time.Time, fn func(month string) error) {
	month := util.MonthKey(asOf)
	if err := fn(month); err != nil {
		log.WarnContext(ctx, "monthly stat update failed",
			"post_id", postID.Hex(), "month", month, "err", err)
	}
}

// invalidateCaches 让所有可能展示该计数的视图缓存失效：
// 详情页、公共列表、作者主页
func (s *engageServiceImpl) invalidateCaches(ctx context.Context, post *model.Post) {
	_ = redis.DeleteKey(ctx, consts.PostDetailKey+post.Slug)
	_ = redis.DeleteByPrefix(ctx, consts.PostListKey)
	_ = redis.DeleteKey(ctx, consts.AuthorPostsKey+post.CreatedBy)
}

func (s *engageServiceImpl) GetMonthlyStats(ctx context.Context, ref string, months int64) ([]*dto.MonthlyStatDTO, error) {
	post, err := s.resolvePost(ctx, ref)
	if err != nil {
		return nil, err
	}

	if months <= 0 || months > 36 {
		months = 12
	}

	stats, err := s.statRepo.ListByPost(ctx, post.ID, months)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MonthlyStatDTO, 0, len(stats))
	for _, stat := range stats {
		result = append(result, &dto.MonthlyStatDTO{
			Month: stat.Month,
			Views: stat.Views,
			Likes: stat.Likes,
		})
	}
	return result, nil
}
