package events

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/push"
	"Inkwell/internal/repository"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotifyHandler 把领域事件落成站内通知，并触发 Web Push。
// 任何一步失败都只记日志丢弃，不做重试。
type NotifyHandler struct {
	notificationRepo repository.NotificationRepo
	pusher           *push.Client
}

func NewNotifyHandler(notificationRepo repository.NotificationRepo, pusher *push.Client) *NotifyHandler {
	return &NotifyHandler{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

func (s *NotifyHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notify consumer setup")
	return nil
}

func (s *NotifyHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notify consumer cleanup")
	return nil
}

func (s *NotifyHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := s.logic(session.Context(), msg); err != nil {
			log.Error("notify event dropped", "offset", msg.Offset, "err", err)
		}
		session.MarkMessage(msg, "")
	}
	return nil
}

func (s *NotifyHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt Event
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return errors.Wrap(err, "unmarshal event")
	}

	// 自己给自己的文章点赞不产生通知
	if evt.Actor != "" && evt.Actor == evt.Author {
		return nil
	}

	content := renderContent(&evt)
	if content == "" {
		return nil
	}

	postID, err := primitive.ObjectIDFromHex(evt.PostID)
	if err != nil {
		return errors.Wrap(err, "parse post id")
	}

	notification := &model.Notification{
		Receiver:  evt.Author,
		Type:      evt.Type,
		PostID:    postID,
		PostSlug:  evt.PostSlug,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err = s.notificationRepo.Create(ctx, notification); err != nil {
		return errors.Wrap(err, "save notification")
	}

	// 推送网关不可用不影响站内通知
	if err = s.pusher.Notify(ctx, evt.Author, "Inkwell", content); err != nil {
		log.WarnContext(ctx, "push gateway notify failed", "receiver", evt.Author, "err", err)
	}

	return nil
}

func renderContent(evt *Event) string {
	switch evt.Type {
	case consts.EventPostLiked:
		return fmt.Sprintf("你的文章《%s》收到了一个赞", evt.PostTitle)
	case consts.EventPostApproved:
		return fmt.Sprintf("你的文章《%s》已通过审核并发布", evt.PostTitle)
	case consts.EventPostRejected:
		if evt.Note != "" {
			return fmt.Sprintf("你的文章《%s》未通过审核：%s", evt.PostTitle, evt.Note)
		}
		return fmt.Sprintf("你的文章《%s》未通过审核", evt.PostTitle)
	default:
		return ""
	}
}
