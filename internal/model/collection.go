package model

import "time"

// Collection 笔记收藏模型，切换语义与 Like 相同但没有冗余计数
type Collection struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:收藏记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_post_collection;index:idx_collections_user_id;comment:收藏用户ID" json:"user_id"`
	PostID    int64     `gorm:"not null;uniqueIndex:uq_user_post_collection;index:idx_collections_post_id;comment:被收藏笔记ID" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_collections_created_at;comment:收藏时间" json:"created_at"`
}

func (Collection) TableName() string {
	return "collections"
}
