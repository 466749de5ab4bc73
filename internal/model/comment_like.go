package model

import "time"

// CommentLike 评论点赞模型，(user_id, comment_id) 唯一
type CommentLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论点赞记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_comment_like;comment:点赞用户ID" json:"user_id"`
	CommentID int64     `gorm:"not null;uniqueIndex:uq_user_comment_like;index:idx_comment_likes_comment_id;comment:被点赞评论ID" json:"comment_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
