package model

import "time"

// Post 笔记模型
type Post struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:笔记标识" json:"id"`
	UserID     int64     `gorm:"not null;index:idx_posts_user_id;comment:作者ID" json:"user_id"`
	Title      string    `gorm:"size:100;not null;comment:标题" json:"title"`
	Content    string    `gorm:"type:text;comment:正文" json:"content"`
	ImageURL   string    `gorm:"size:500;comment:封面图地址" json:"image_url"`
	VideoURL   *string   `gorm:"size:500;comment:视频地址" json:"video_url"`
	Category   string    `gorm:"size:50;not null;default:'推荐';index:idx_posts_category;comment:分类" json:"category"`
	IsPrivate  bool      `gorm:"not null;default:false;comment:是否私密" json:"is_private"`
	LikesCount int64     `gorm:"not null;default:0;comment:点赞数" json:"likes_count"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_posts_created_at;comment:发布时间" json:"created_at"`

	// 关联关系（删除笔记时级联清理依赖行）
	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Images      []PostImage  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Likes       []Like       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
	Collections []Collection `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"collections,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
