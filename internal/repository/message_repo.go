package repository

import (
	"redbook-go/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 创建私信
func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

// ListBetween 双向会话消息，按时间倒序分页（调用方翻转为升序展示）
func (r *MessageRepository) ListBetween(userA, userB int64, limit, offset int) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	return messages, err
}

// ConversationHead 会话列表中的一项：对端用户及最近一条消息时间
type ConversationHead struct {
	PeerID   int64 `gorm:"column:peer_id"`
	LastTime int64 `gorm:"column:last_time"`
}

// ListConversationPeers 与某用户有过私信往来的对端，按最近消息时间倒序
func (r *MessageRepository) ListConversationPeers(userID int64) ([]int64, error) {
	var heads []ConversationHead
	err := r.db.Model(&model.Message{}).
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS peer_id, "+
			"EXTRACT(EPOCH FROM MAX(created_at))::bigint AS last_time", userID).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("peer_id").
		Order("last_time DESC").
		Scan(&heads).Error
	if err != nil {
		return nil, err
	}

	peers := make([]int64, 0, len(heads))
	for _, h := range heads {
		peers = append(peers, h.PeerID)
	}
	return peers, nil
}

// GetLastBetween 双向会话的最近一条消息
func (r *MessageRepository) GetLastBetween(userA, userB int64) (*model.Message, error) {
	var message model.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// CountUnreadFrom 某对端发给 receiver 的未读消息数
func (r *MessageRepository) CountUnreadFrom(senderID, receiverID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Count(&count).Error
	return count, err
}

// CountUnread 某用户的未读私信总数
func (r *MessageRepository) CountUnread(receiverID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

// MarkRead 将某对端发来的未读消息全部标记已读
func (r *MessageRepository) MarkRead(senderID, receiverID int64) error {
	return r.db.Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		UpdateColumn("is_read", true).Error
}
