package service

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/mailer"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"

	"github.com/google/uuid"
)

// defaultDigestWindow 没有上次发送记录时回溯的窗口
const defaultDigestWindow = 24 * time.Hour

type NewsletterService interface {
	Subscribe(ctx context.Context, req *dto.SubscribeDTO) (created bool, err error)
	Unsubscribe(ctx context.Context, token string) error
	// SendDigest 收集上次发送以来新过审的文章并投递简报，返回文章数与收件人数
	SendDigest(ctx context.Context) (posts int, recipients int, err error)
}

type newsletterServiceImpl struct {
	subRepo  repository.SubscriberRepo
	postRepo repository.PostRepo
	mailer   *mailer.Client
	baseURL  string
}

func NewNewsletterService(subRepo repository.SubscriberRepo, postRepo repository.PostRepo, mailerClient *mailer.Client, baseURL string) NewsletterService {
	return &newsletterServiceImpl{
		subRepo:  subRepo,
		postRepo: postRepo,
		mailer:   mailerClient,
		baseURL:  baseURL,
	}
}

// Subscribe 幂等：重复订阅同一邮箱直接成功，不报冲突
func (s *newsletterServiceImpl) Subscribe(ctx context.Context, req *dto.SubscribeDTO) (bool, error) {
	if err := util.ValidateDTO(req); err != nil {
		return false, ErrParamInvalid
	}

	sub := &model.Subscriber{
		Email:            req.Email,
		UnsubscribeToken: uuid.NewString(),
	}
	return s.subRepo.Upsert(ctx, sub)
}

func (s *newsletterServiceImpl) Unsubscribe(ctx context.Context, token string) error {
	if token == "" {
		return ErrParamInvalid
	}

	deleted, err := s.subRepo.DeleteByToken(ctx, token)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSubscriberNotFound
	}
	return nil
}

func (s *newsletterServiceImpl) SendDigest(ctx context.Context) (int, int, error) {
	since := s.lastRun(ctx)

	posts, err := s.postRepo.ListApprovedSince(ctx, since)
	if err != nil {
		return 0, 0, err
	}
	if len(posts) == 0 {
		s.recordRun(ctx)
		return 0, 0, nil
	}

	subs, err := s.subRepo.ListAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(subs) == 0 {
		s.recordRun(ctx)
		return len(posts), 0, nil
	}

	items := make([]*dto.DigestItemDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, &dto.DigestItemDTO{
			Title:   post.Title,
			Slug:    post.Slug,
			Excerpt: post.Excerpt,
			URL:     fmt.Sprintf("%s/posts/%s", s.baseURL, post.Slug),
		})
	}

	emails := make([]string, 0, len(subs))
	for _, sub := range subs {
		emails = append(emails, sub.Email)
	}

	subject := fmt.Sprintf("本期更新：%d 篇新文章", len(items))
	if err = s.mailer.SendBatch(ctx, emails, subject, items); err != nil {
		return 0, 0, err
	}

	s.recordRun(ctx)
	log.InfoContext(ctx, "digest sent", "posts", len(items), "recipients", len(emails))
	return len(items), len(emails), nil
}

func (s *newsletterServiceImpl) lastRun(ctx context.Context) time.Time {
	value, err := redis.GetValue(ctx, consts.NewsletterLastRunKey)
	if err == nil && value != "" {
		if t, parseErr := time.Parse(time.RFC3339, value); parseErr == nil {
			return t
		}
	}
	return time.Now().Add(-defaultDigestWindow)
}

func (s *newsletterServiceImpl) recordRun(ctx context.Context) {
	if err := redis.SetValue(ctx, consts.NewsletterLastRunKey, time.Now().Format(time.RFC3339)); err != nil {
		log.WarnContext(ctx, "digest watermark write failed", "err", err)
	}
}
