package repository

import (
	"redbook-go/internal/model"

	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Exists 是否已关注
func (r *FollowRepository) Exists(followerID, followedID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert 插入关注记录，唯一约束冲突原样返回 gorm.ErrDuplicatedKey
func (r *FollowRepository) Insert(followerID, followedID int64) error {
	return r.db.Create(&model.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

// Remove 删除关注记录，返回是否真的删除了行
func (r *FollowRepository) Remove(followerID, followedID int64) (bool, error) {
	result := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListFollowing 某用户关注的人
func (r *FollowRepository) ListFollowing(followerID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

// ListFollowers 关注某用户的人
func (r *FollowRepository) ListFollowers(followedID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", followedID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

// CountFollowing 关注数
func (r *FollowRepository) CountFollowing(followerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("follower_id = ?", followerID).Count(&count).Error
	return count, err
}

// CountFollowers 粉丝数
func (r *FollowRepository) CountFollowers(followedID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("followed_id = ?", followedID).Count(&count).Error
	return count, err
}

// BatchCheckFollowing 批量查询 viewer 关注了哪些目标用户
func (r *FollowRepository) BatchCheckFollowing(viewerID int64, targetIDs []int64) (map[int64]bool, error) {
	following := make(map[int64]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return following, nil
	}

	var ids []int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id IN ?", viewerID, targetIDs).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		following[id] = true
	}
	return following, nil
}
