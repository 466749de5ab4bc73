package dto

import (
	"time"

	"redbook-go/internal/model"
	"redbook-go/internal/service"
)

// SendMessageRequest 发送私信请求
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// MessageResponse 私信响应
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversationResponse 会话列表中的一项
type ConversationResponse struct {
	Peer        UserResponse    `json:"peer"`
	LastMessage MessageResponse `json:"last_message"`
	UnreadCount int64           `json:"unread_count"`
}

// UnreadSummaryResponse 未读角标
type UnreadSummaryResponse struct {
	Messages      int64 `json:"messages"`
	Notifications int64 `json:"notifications"`
	Total         int64 `json:"total"`
}

// ToMessageResponse 模型转响应
func ToMessageResponse(message *model.Message) MessageResponse {
	return MessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		IsRead:     message.IsRead,
		CreatedAt:  message.CreatedAt,
	}
}

// ToMessageResponses 批量转换
func ToMessageResponses(messages []model.Message) []MessageResponse {
	result := make([]MessageResponse, len(messages))
	for i := range messages {
		result[i] = ToMessageResponse(&messages[i])
	}
	return result
}

// ToConversationResponses 会话列表转响应
func ToConversationResponses(conversations []service.Conversation) []ConversationResponse {
	result := make([]ConversationResponse, len(conversations))
	for i := range conversations {
		peer := conversations[i].Peer
		last := conversations[i].LastMessage
		result[i] = ConversationResponse{
			Peer:        ToUserResponse(&peer),
			LastMessage: ToMessageResponse(&last),
			UnreadCount: conversations[i].UnreadCount,
		}
	}
	return result
}

// ToUnreadSummaryResponse 未读角标转响应
func ToUnreadSummaryResponse(summary *service.UnreadSummary) UnreadSummaryResponse {
	return UnreadSummaryResponse{
		Messages:      summary.Messages,
		Notifications: summary.Notifications,
		Total:         summary.Total,
	}
}
