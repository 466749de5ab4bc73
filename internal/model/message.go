package model

import "time"

// Message 私信模型，is_read 只能从未读翻转到已读
type Message struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:私信ID" json:"id"`
	SenderID   int64     `gorm:"not null;index:idx_messages_sender_id;comment:发送者ID" json:"sender_id"`
	ReceiverID int64     `gorm:"not null;index:idx_messages_receiver_id;comment:接收者ID" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null;comment:私信内容" json:"content"`
	IsRead     bool      `gorm:"not null;default:false;comment:是否已读" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_messages_created_at;comment:发送时间" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
