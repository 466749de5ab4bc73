package model

import "time"

// Comment 评论模型
type Comment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	UserID     int64     `gorm:"not null;index:idx_comments_user_id;comment:评论用户ID" json:"user_id"`
	PostID     int64     `gorm:"not null;index:idx_comments_post_id;comment:被评论笔记ID" json:"post_id"`
	Content    string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	LikesCount int64     `gorm:"not null;default:0;comment:评论点赞数" json:"likes_count"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_comments_created_at;comment:评论时间" json:"created_at"`

	// 关联关系
	User  User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Likes []CommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
