package model

import "time"

// 通知类型
const (
	NotificationTypeLikePost = "like_post"
)

// Notification 通知模型，由点赞等操作以尽力而为的方式写入
type Notification struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:通知ID" json:"id"`
	ReceiverID int64     `gorm:"not null;index:idx_notifications_receiver_id;comment:接收者ID" json:"receiver_id"`
	SenderID   int64     `gorm:"not null;comment:触发者ID" json:"sender_id"`
	Type       string    `gorm:"size:50;not null;comment:通知类型" json:"type"`
	TargetID   *int64    `gorm:"comment:目标对象ID（如笔记ID）" json:"target_id"`
	Content    string    `gorm:"type:text;comment:通知文案" json:"content"`
	IsRead     bool      `gorm:"not null;default:false;comment:是否已读" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_notifications_created_at;comment:通知时间" json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
