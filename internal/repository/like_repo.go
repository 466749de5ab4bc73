package repository

import (
	"redbook-go/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Exists 用户是否已点赞该笔记
func (r *LikeRepository) Exists(userID, postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert 插入点赞并同步计数（同一事务）。
// 唯一约束冲突原样返回 gorm.ErrDuplicatedKey，由调用方判定并发重复。
func (r *LikeRepository) Insert(userID, postID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Like{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
	})
}

// Remove 删除点赞并同步计数（同一事务），返回是否真的删除了行
func (r *LikeRepository) Remove(userID, postID int64) (bool, error) {
	var removed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&model.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&model.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("GREATEST(likes_count - ?, 0)", 1)).Error
	})
	return removed, err
}
