package dto

import (
	"time"

	"redbook-go/internal/model"
	"redbook-go/internal/service"
)

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID         int64        `json:"id"`
	PostID     int64        `json:"post_id"`
	Content    string       `json:"content"`
	LikesCount int64        `json:"likes_count"`
	IsLiked    bool         `json:"is_liked"`
	CreatedAt  time.Time    `json:"created_at"`
	Author     UserResponse `json:"author"`
}

// ToCommentResponse 模型转响应
func ToCommentResponse(comment *model.Comment, isLiked bool) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		PostID:     comment.PostID,
		Content:    comment.Content,
		LikesCount: comment.LikesCount,
		IsLiked:    isLiked,
		CreatedAt:  comment.CreatedAt,
		Author:     ToUserResponse(&comment.User),
	}
}

// ToCommentResponses 批量转换
func ToCommentResponses(comments []service.CommentWithState) []CommentResponse {
	result := make([]CommentResponse, len(comments))
	for i := range comments {
		result[i] = ToCommentResponse(&comments[i].Comment, comments[i].IsLiked)
	}
	return result
}
