package service

import (
	"context"
	"fmt"

	"redbook-go/internal/model"
	"redbook-go/internal/repository"
)

type NotificationService struct {
	notifRepo *repository.NotificationRepository
}

func NewNotificationService(notifRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// List 某用户收到的通知，按时间倒序
func (s *NotificationService) List(ctx context.Context, userID int64) ([]model.Notification, error) {
	notifications, err := s.notifRepo.ListByReceiver(userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkAllRead 将某用户的未读通知全部标记已读
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notifRepo.MarkAllRead(userID); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}
