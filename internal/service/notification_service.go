package service

import (
	"context"
	"errors"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, principal Principal, page, pageSize int) ([]*dto.NotificationDTO, error)
	UnreadCount(ctx context.Context, principal Principal) (*dto.UnreadCountDTO, error)
	MarkRead(ctx context.Context, principal Principal, id string) error
	MarkAllRead(ctx context.Context, principal Principal) error
}

type notificationServiceImpl struct {
	repo repository.NotificationRepo
}

func NewNotificationService(repo repository.NotificationRepo) NotificationService {
	return &notificationServiceImpl{repo: repo}
}

func (s *notificationServiceImpl) ListNotifications(ctx context.Context, principal Principal, page, pageSize int) ([]*dto.NotificationDTO, error) {
	page, pageSize = normalizePage(page, pageSize)

	list, err := s.repo.ListByReceiver(ctx, principal.Email, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotificationDTO, 0, len(list))
	for _, msg := range list {
		result = append(result, &dto.NotificationDTO{
			ID:        msg.ID.Hex(),
			Type:      msg.Type,
			PostSlug:  msg.PostSlug,
			Content:   msg.Content,
			IsRead:    msg.IsRead,
			CreatedAt: msg.CreatedAt,
		})
	}
	return result, nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, principal Principal) (*dto.UnreadCountDTO, error) {
	count, err := s.repo.GetUnreadCount(ctx, principal.Email)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountDTO{Count: count}, nil
}

// MarkRead 只能标记自己名下的通知，查询条件带 receiver
func (s *notificationServiceImpl) MarkRead(ctx context.Context, principal Principal, id string) error {
	err := s.repo.MarkAsRead(ctx, principal.Email, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, mongo.ErrInvalidIndexValue) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, principal Principal) error {
	return s.repo.MarkAllAsRead(ctx, principal.Email)
}
