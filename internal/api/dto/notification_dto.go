package dto

import (
	"time"

	"redbook-go/internal/model"
)

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        int64        `json:"id"`
	Type      string       `json:"type"`
	TargetID  *int64       `json:"target_id"`
	Content   string       `json:"content"`
	IsRead    bool         `json:"is_read"`
	CreatedAt time.Time    `json:"created_at"`
	Sender    UserResponse `json:"sender"`
}

// ToNotificationResponses 批量转换
func ToNotificationResponses(notifications []model.Notification) []NotificationResponse {
	result := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		result[i] = NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			TargetID:  n.TargetID,
			Content:   n.Content,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
			Sender:    ToUserResponse(&n.Sender),
		}
	}
	return result
}
