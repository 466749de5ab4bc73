package repository

import (
	"redbook-go/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 创建通知
func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

// ListByReceiver 某用户收到的通知（带发送者信息），按时间倒序
func (r *NotificationRepository) ListByReceiver(receiverID int64) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkAllRead 将某用户的未读通知全部标记已读
func (r *NotificationRepository) MarkAllRead(receiverID int64) error {
	return r.db.Model(&model.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		UpdateColumn("is_read", true).Error
}

// CountUnread 某用户的未读通知数
func (r *NotificationRepository) CountUnread(receiverID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}
