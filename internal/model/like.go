package model

import "time"

// Like 笔记点赞模型，(user_id, post_id) 唯一约束是并发下"最多一条"的真正保证
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_post_like;index:idx_likes_user_id;comment:点赞用户ID" json:"user_id"`
	PostID    int64     `gorm:"not null;uniqueIndex:uq_user_post_like;index:idx_likes_post_id;comment:被点赞笔记ID" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_likes_created_at;comment:点赞时间" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
