package service

import (
	"context"
	log "log/slog"
	"time"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"

	"github.com/goccy/go-json"
)

const sitemapCacheTTL = time.Hour

type SitemapService interface {
	ListEntries(ctx context.Context) ([]*dto.SitemapEntryDTO, error)
}

type sitemapServiceImpl struct {
	postRepo repository.PostRepo
}

func NewSitemapService(postRepo repository.PostRepo) SitemapService {
	return &sitemapServiceImpl{postRepo: postRepo}
}

// ListEntries 站点地图只暴露 approved 文章。结果整体缓存，
// 文章状态变更时由服务层统一失效。
func (s *sitemapServiceImpl) ListEntries(ctx context.Context) ([]*dto.SitemapEntryDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.SitemapKey); err == nil && cached != "" {
		var entries []*dto.SitemapEntryDTO
		if err = json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
	}

	posts, err := s.postRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.SitemapEntryDTO, 0, len(posts))
	for _, post := range posts {
		entries = append(entries, &dto.SitemapEntryDTO{
			Slug:      post.Slug,
			UpdatedAt: post.UpdatedAt,
		})
	}

	if payload, err := json.Marshal(entries); err == nil {
		if err = redis.SetWithExpiration(ctx, consts.SitemapKey, payload, sitemapCacheTTL); err != nil {
			log.WarnContext(ctx, "sitemap cache write failed", "err", err)
		}
	}
	return entries, nil
}
