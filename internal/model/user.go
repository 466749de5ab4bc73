package model

import "time"

// User 用户模型
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex;comment:用户名" json:"username"`
	Password  string    `gorm:"size:255;not null;comment:密码哈希" json:"-"` // json:"-" 序列化时忽略密码
	Nickname  string    `gorm:"size:50;not null;comment:昵称" json:"nickname"`
	AvatarURL *string   `gorm:"size:500;comment:头像地址" json:"avatar_url"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`

	// 关联关系
	Posts    []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"comments,omitempty"`
}

func (User) TableName() string {
	return "users"
}
