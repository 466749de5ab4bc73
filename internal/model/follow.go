package model

import "time"

// Follow 关注关系模型，follower 关注 followed，不允许自关注
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:关注关系ID" json:"id"`
	FollowerID int64     `gorm:"not null;uniqueIndex:uq_follower_followed;index:idx_follows_follower_id;comment:粉丝用户ID" json:"follower_id"`
	FollowedID int64     `gorm:"not null;uniqueIndex:uq_follower_followed;index:idx_follows_followed_id;comment:被关注用户ID" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_follows_created_at;comment:关注时间" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
