package repository

import (
	"redbook-go/internal/model"

	"gorm.io/gorm"
)

type CommentLikeRepository struct {
	db *gorm.DB
}

func NewCommentLikeRepository(db *gorm.DB) *CommentLikeRepository {
	return &CommentLikeRepository{db: db}
}

// Exists 用户是否已点赞该评论
func (r *CommentLikeRepository) Exists(userID, commentID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BatchCheckLiked 批量查询用户点赞过的评论 ID
func (r *CommentLikeRepository) BatchCheckLiked(userID int64, commentIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(commentIDs))
	if len(commentIDs) == 0 {
		return liked, nil
	}

	var ids []int64
	err := r.db.Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// Insert 插入评论点赞并同步计数（同一事务）。
// 唯一约束冲突原样返回 gorm.ErrDuplicatedKey，由调用方判定并发重复。
func (r *CommentLikeRepository) Insert(userID, commentID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.CommentLike{UserID: userID, CommentID: commentID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
	})
}

// Remove 删除评论点赞并同步计数（同一事务），返回是否真的删除了行
func (r *CommentLikeRepository) Remove(userID, commentID int64) (bool, error) {
	var removed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			Delete(&model.CommentLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&model.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes_count", gorm.Expr("GREATEST(likes_count - ?, 0)", 1)).Error
	})
	return removed, err
}
