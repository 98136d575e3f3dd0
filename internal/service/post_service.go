package service

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/events"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	detailCacheTTL = 10 * time.Minute
	listCacheTTL   = 5 * time.Minute

	// ExcerptMaxRunes 摘要长度上限
	ExcerptMaxRunes = 200
)

type PostService interface {
	CreatePost(ctx context.Context, principal Principal, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, principal Principal, ref string) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, principal Principal, ref string, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	TransitionPost(ctx context.Context, principal Principal, ref string, target string, note string) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, principal Principal, ref string) error
	ListPublicPosts(ctx context.Context, page, pageSize int) (*dto.PageDTO[*dto.PostDTO], error)
	ListAuthorPosts(ctx context.Context, principal Principal, author string, page, pageSize int) (*dto.PageDTO[*dto.PostDTO], error)
	ListReviewQueue(ctx context.Context, page, pageSize int) (*dto.PageDTO[*dto.PostDTO], error)
	SearchPosts(ctx context.Context, keyword string, page, pageSize int) ([]*dto.PostDTO, error)
	LatestPosts(ctx context.Context, page, pageSize int) ([]*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo  repository.PostRepo
	esRepo    es.PostRepo
	publisher EventPublisher
}

func NewPostService(postRepo repository.PostRepo, esRepo es.PostRepo, publisher EventPublisher) PostService {
	return &postServiceImpl{
		postRepo:  postRepo,
		esRepo:    esRepo,
		publisher: publisher,
	}
}

// findPostByRef 文章标识既可以是 ObjectID 十六进制也可以是 slug，先按主键解析
func findPostByRef(ctx context.Context, repo repository.PostRepo, ref string) (*model.Post, error) {
	if ref == "" {
		return nil, ErrParamInvalid
	}

	var (
		post *model.Post
		err  error
	)
	if oid, oidErr := primitive.ObjectIDFromHex(ref); oidErr == nil {
		post, err = repo.GetByID(ctx, oid)
	} else {
		post, err = repo.GetBySlug(ctx, ref)
	}

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// resolveSlug 缺省时由标题派生，显式提供时校验字符集，最后查重。
// exclude 用于编辑场景排除自身文档。
func (s *postServiceImpl) resolveSlug(ctx context.Context, req *dto.PostBaseDTO, exclude primitive.ObjectID) (string, error) {
	slug := req.Slug
	if slug == "" {
		slug = util.DeriveSlug(req.Title)
	}
	if !util.ValidateSlug(slug) {
		return "", ErrSlugInvalid
	}

	exists, err := s.postRepo.ExistsSlugExcept(ctx, slug, exclude)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrSlugConflict
	}
	return slug, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, principal Principal, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		log.WarnContext(ctx, "post payload rejected", "err", err)
		return nil, ErrParamInvalid
	}

	slug, err := s.resolveSlug(ctx, req, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Slug:      slug,
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   util.ExtractExcerpt(req.Content, ExcerptMaxRunes),
		Category:  req.Category,
		Language:  req.Language,
		Tags:      util.NormalizeTags(req.Tags),
		CoverURL:  req.CoverURL,
		Status:    consts.PostStatusDraft,
		CreatedBy: principal.Email,
	}

	if err = s.postRepo.Create(ctx, post); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	return toPostDTO(post), nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, principal Principal, ref string) (*dto.PostDTO, error) {
	// 详情缓存只存 approved 文章，按 slug 访问时可直接命中
	if cached, err := redis.GetValue(ctx, consts.PostDetailKey+ref); err == nil && cached != "" {
		var result dto.PostDTO
		if err = json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	post, err := findPostByRef(ctx, s.postRepo, ref)
	if err != nil {
		return nil, err
	}

	// 非公开状态只有作者本人或管理员可见
	if post.Status != consts.PostStatusApproved && !CanMutate(principal, post) {
		return nil, ErrPostNotFound
	}

	result := toPostDTO(post)
	if post.Status == consts.PostStatusApproved {
		if payload, err := json.Marshal(result); err == nil {
			if err = redis.SetWithExpiration(ctx, consts.PostDetailKey+post.Slug, payload, detailCacheTTL); err != nil {
				log.WarnContext(ctx, "post detail cache write failed", "slug", post.Slug, "err", err)
			}
		}
	}
	return result, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, principal Principal, ref string, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		log.WarnContext(ctx, "post payload rejected", "err", err)
		return nil, ErrParamInvalid
	}

	post, err := findPostByRef(ctx, s.postRepo, ref)
	if err != nil {
		return nil, err
	}
	if !CanMutate(principal, post) {
		return nil, ErrForbidden
	}

	oldSlug := post.Slug
	slug, err := s.resolveSlug(ctx, req, post.ID)
	if err != nil {
		return nil, err
	}

	post.Slug = slug
	post.Title = req.Title
	post.Content = req.Content
	post.Excerpt = util.ExtractExcerpt(req.Content, ExcerptMaxRunes)
	post.Category = req.Category
	post.Language = req.Language
	post.Tags = util.NormalizeTags(req.Tags)
	post.CoverURL = req.CoverURL

	if err = s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	// 公开文章内容变更需同步搜索索引
	if post.Status == consts.PostStatusApproved {
		s.syncIndex(ctx, post)
	}
	s.invalidate(ctx, post, oldSlug)

	return toPostDTO(post), nil
}

// allowedTransitions 状态机：
// draft → pending_review|approved；pending_review → approved|rejected；
// rejected → pending_review（驳回后可重新提交）；approved ↔ archived；approved ↔ private
var allowedTransitions = map[string]map[string]bool{
	consts.PostStatusDefault: {
		consts.PostStatusPendingReview: true,
		consts.PostStatusApproved:      true,
	},
	consts.PostStatusDraft: {
		consts.PostStatusPendingReview: true,
		consts.PostStatusApproved:      true,
	},
	consts.PostStatusPendingReview: {
		consts.PostStatusApproved: true,
		consts.PostStatusRejected: true,
	},
	consts.PostStatusRejected: {
		consts.PostStatusPendingReview: true,
	},
	consts.PostStatusApproved: {
		consts.PostStatusArchived: true,
		consts.PostStatusPrivate:  true,
	},
	consts.PostStatusArchived: {
		consts.PostStatusApproved: true,
	},
	consts.PostStatusPrivate: {
		consts.PostStatusApproved: true,
	},
}

// TransitionPost 流转文章状态。发布/批准路径按现行约定不重新校验必填字段，
// 字段校验只发生在创建与编辑路径。
func (s *postServiceImpl) TransitionPost(ctx context.Context, principal Principal, ref string, target string, note string) (*dto.PostDTO, error) {
	post, err := findPostByRef(ctx, s.postRepo, ref)
	if err != nil {
		return nil, err
	}
	if !CanMutate(principal, post) {
		return nil, ErrForbidden
	}

	if !allowedTransitions[post.Status][target] {
		return nil, ErrStatusTransition
	}

	if err = s.postRepo.UpdateStatus(ctx, post.ID, target); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	prev := post.Status
	post.Status = target
	post.UpdatedAt = time.Now()

	// 只有 approved 状态留在搜索索引中
	if target == consts.PostStatusApproved {
		s.syncIndex(ctx, post)
	} else if prev == consts.PostStatusApproved {
		s.dropIndex(ctx, post)
	}
	s.invalidate(ctx, post, post.Slug)

	switch target {
	case consts.PostStatusApproved:
		s.publisher.Publish(ctx, &events.Event{
			Type:      consts.EventPostApproved,
			PostID:    post.ID.Hex(),
			PostSlug:  post.Slug,
			PostTitle: post.Title,
			Author:    post.CreatedBy,
			Actor:     principal.Email,
		})
	case consts.PostStatusRejected:
		s.publisher.Publish(ctx, &events.Event{
			Type:      consts.EventPostRejected,
			PostID:    post.ID.Hex(),
			PostSlug:  post.Slug,
			PostTitle: post.Title,
			Author:    post.CreatedBy,
			Actor:     principal.Email,
			Note:      note,
		})
	}

	return toPostDTO(post), nil
}

// DeletePost 软删除：只翻状态位，文档保留
func (s *postServiceImpl) DeletePost(ctx context.Context, principal Principal, ref string) error {
	post, err := findPostByRef(ctx, s.postRepo, ref)
	if err != nil {
		return err
	}
	if !CanMutate(principal, post) {
		return ErrForbidden
	}

	if err = s.postRepo.UpdateStatus(ctx, post.ID, consts.PostStatusDeleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return err
	}

	if post.Status == consts.PostStatusApproved {
		s.dropIndex(ctx, post)
	}
	s.invalidate(ctx, post, post.Slug)
	return nil
}

func (s *postServiceImpl) ListPublicPosts(ctx context.Context, page, pageSize int) (*dto.PageDTO[*dto.PostDTO], error) {
	page, pageSize = normalizePage(page, pageSize)

	cacheKey := fmt.Sprintf("%s%d:%d", consts.PostListKey, page, pageSize)
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		var result dto.PageDTO[*dto.PostDTO]
		if err = json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	posts, total, err := s.postRepo.ListByStatus(ctx, consts.PostStatusApproved, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := &dto.PageDTO[*dto.PostDTO]{
		List:     toPostDTOs(posts),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}

	if payload, err := json.Marshal(result); err == nil {
		if err = redis.SetWithExpiration(ctx, cacheKey, payload, listCacheTTL); err != nil {
			log.WarnContext(ctx, "post list cache write failed", "key", cacheKey, "err", err)
		}
	}
	return result, nil
}

// ListAuthorPosts 作者本人或管理员可见全部状态，其余访问者只看 approved
func (s *postServiceImpl) ListAuthorPosts(ctx context.Context, principal Principal, author string, page, pageSize int) (*dto.PageDTO[*dto.PostDTO], error) {
	if author == "" {
		return nil, ErrParamInvalid
	}
	page, pageSize = normalizePage(page, pageSize)

	publicOnly := !(principal.IsAdmin() || principal.Email == author)

	posts, total, err := s.postRepo.ListByAuthor(ctx, author, publicOnly, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.PageDTO[*dto.PostDTO]{
		List:     toPostDTOs(posts),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ListReviewQueue 待审核队列，路由层限定管理员访问
func (s *postServiceImpl) ListReviewQueue(ctx context.Context, page, pageSize int) (*dto.PageDTO[*dto.PostDTO], error) {
	page, pageSize = normalizePage(page, pageSize)

	posts, total, err := s.postRepo.ListByStatus(ctx, consts.PostStatusPendingReview, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.PageDTO[*dto.PostDTO]{
		List:     toPostDTOs(posts),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *postServiceImpl) SearchPosts(ctx context.Context, keyword string, page, pageSize int) ([]*dto.PostDTO, error) {
	if keyword == "" {
		return nil, ErrParamInvalid
	}
	page, pageSize = normalizePage(page, pageSize)

	hits, err := s.esRepo.SearchPosts(ctx, keyword, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return esToPostDTOs(hits), nil
}

func (s *postServiceImpl) LatestPosts(ctx context.Context, page, pageSize int) ([]*dto.PostDTO, error) {
	page, pageSize = normalizePage(page, pageSize)

	hits, err := s.esRepo.GetLatestPosts(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return esToPostDTOs(hits), nil
}

// syncIndex 搜索索引与缓存一样是旁路设施，失败不阻断主流程
func (s *postServiceImpl) syncIndex(ctx context.Context, post *model.Post) {
	doc := &es.PostES{
		ID:        post.ID.Hex(),
		Slug:      post.Slug,
		Title:     post.Title,
		Excerpt:   post.Excerpt,
		Tags:      post.Tags,
		Category:  post.Category,
		Language:  post.Language,
		Author:    post.CreatedBy,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if err := s.esRepo.IndexPost(ctx, doc); err != nil {
		log.ErrorContext(ctx, "post index failed", "post_id", doc.ID, "err", err)
	}
}

func (s *postServiceImpl) dropIndex(ctx context.Context, post *model.Post) {
	if err := s.esRepo.DeletePost(ctx, post.ID.Hex()); err != nil {
		log.ErrorContext(ctx, "post index delete failed", "post_id", post.ID.Hex(), "err", err)
	}
}

// invalidate 失效详情/列表/作者页/站点地图缓存。
// oldSlug 覆盖改 slug 的场景，旧地址缓存一并清掉。
func (s *postServiceImpl) invalidate(ctx context.Context, post *model.Post, oldSlug string) {
	_ = redis.DeleteKey(ctx, consts.PostDetailKey+post.Slug)
	if oldSlug != "" && oldSlug != post.Slug {
		_ = redis.DeleteKey(ctx, consts.PostDetailKey+oldSlug)
	}
	_ = redis.DeleteByPrefix(ctx, consts.PostListKey)
	_ = redis.DeleteKey(ctx, consts.AuthorPostsKey+post.CreatedBy)
	_ = redis.DeleteKey(ctx, consts.SitemapKey)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	result := &dto.PostDTO{}
	_ = copier.Copy(result, post)
	result.ID = post.ID.Hex()
	return result
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, toPostDTO(post))
	}
	return result
}

// esToPostDTOs 搜索结果只携带索引里的公开字段，正文需回源详情接口
func esToPostDTOs(hits []*es.PostES) []*dto.PostDTO {
	result := make([]*dto.PostDTO, 0, len(hits))
	for _, hit := range hits {
		result = append(result, &dto.PostDTO{
			ID:        hit.ID,
			Slug:      hit.Slug,
			Title:     hit.Title,
			Excerpt:   hit.Excerpt,
			Tags:      hit.Tags,
			Category:  hit.Category,
			Language:  hit.Language,
			Status:    consts.PostStatusApproved,
			CreatedBy: hit.Author,
			CreatedAt: hit.CreatedAt,
			UpdatedAt: hit.UpdatedAt,
		})
	}
	return result
}
