package job

import (
	"context"
	log "log/slog"

	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/service"

	"github.com/google/uuid"
)

// NewsletterJob 每日简报：收集上次发送以来新过审的文章并批量投递
type NewsletterJob struct {
	newsletterSvc service.NewsletterService
}

func NewNewsletterJob(newsletterSvc service.NewsletterService) *NewsletterJob {
	return &NewsletterJob{
		newsletterSvc: newsletterSvc,
	}
}

func (s *NewsletterJob) Run() {
	traceID := "job-newsletter-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	posts, recipients, err := s.newsletterSvc.SendDigest(ctx)
	if err != nil {
		log.ErrorContext(ctx, "newsletter digest failed", "err", err)
		return
	}

	log.InfoContext(ctx, "NewsletterJob finished", "posts", posts, "recipients", recipients)
}
