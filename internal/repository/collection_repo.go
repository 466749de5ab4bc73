package repository

import (
	"redbook-go/internal/model"

	"gorm.io/gorm"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Exists 用户是否已收藏该笔记
func (r *CollectionRepository) Exists(userID, postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Collection{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert 插入收藏记录，唯一约束冲突原样返回 gorm.ErrDuplicatedKey
func (r *CollectionRepository) Insert(userID, postID int64) error {
	return r.db.Create(&model.Collection{UserID: userID, PostID: postID}).Error
}

// Remove 删除收藏记录，返回是否真的删除了行
func (r *CollectionRepository) Remove(userID, postID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Collection{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
