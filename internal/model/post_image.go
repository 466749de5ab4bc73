package model

import "time"

// PostImage 笔记图片模型，sort_order 从 0 连续编号，0 号即封面
type PostImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:图片记录ID" json:"id"`
	PostID    int64     `gorm:"not null;uniqueIndex:uq_post_image_order;index:idx_post_images_post_id;comment:所属笔记ID" json:"post_id"`
	ImageURL  string    `gorm:"size:500;not null;comment:图片地址" json:"image_url"`
	SortOrder int       `gorm:"not null;uniqueIndex:uq_post_image_order;comment:排序位置" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
}

func (PostImage) TableName() string {
	return "post_images"
}
