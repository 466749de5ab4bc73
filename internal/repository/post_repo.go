package repository

import (
	"redbook-go/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// CreateWithImages 创建笔记及其图片行（同一事务，全有或全无）
func (r *PostRepository) CreateWithImages(post *model.Post, images []model.PostImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].PostID = post.ID
			images[i].SortOrder = i
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID 根据 ID 查询笔记
func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDWithUser 根据 ID 查询笔记（带作者信息）
func (r *PostRepository) GetByIDWithUser(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("User").Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetImages 查询笔记的图片，按 sort_order 升序
func (r *PostRepository) GetImages(postID int64) ([]model.PostImage, error) {
	var images []model.PostImage
	err := r.db.Where("post_id = ?", postID).Order("sort_order ASC").Find(&images).Error
	return images, err
}

// ListFeed 公开笔记流，orderClause 由调用方的排序策略给出
func (r *PostRepository) ListFeed(limit, offset int, search, category, orderClause string) ([]model.Post, error) {
	query := r.db.Model(&model.Post{}).Preload("User").Where("is_private = ?", false)

	if search != "" {
		// ILIKE 保证 ASCII 搜索词大小写不敏感
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var posts []model.Post
	err := query.Order(orderClause).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// ListByUser 查询某用户的笔记，publicOnly 时排除私密笔记
func (r *PostRepository) ListByUser(userID int64, publicOnly bool) ([]model.Post, error) {
	query := r.db.Model(&model.Post{}).Preload("User").Where("user_id = ?", userID)
	if publicOnly {
		query = query.Where("is_private = ?", false)
	}

	var posts []model.Post
	err := query.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// ListLikedByUser 某用户点赞过的公开笔记，按点赞时间倒序
func (r *PostRepository) ListLikedByUser(userID int64) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Model(&model.Post{}).Preload("User").
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ? AND posts.is_private = ?", userID, false).
		Order("likes.created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ListCollectedByUser 某用户收藏过的公开笔记，按收藏时间倒序
func (r *PostRepository) ListCollectedByUser(userID int64) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Model(&model.Post{}).Preload("User").
		Joins("JOIN collections ON collections.post_id = posts.id").
		Where("collections.user_id = ? AND posts.is_private = ?", userID, false).
		Order("collections.created_at DESC").
		Find(&posts).Error
	return posts, err
}

// GetByIDsWithUser 批量查询笔记（带作者），供 ES 搜索结果回表
func (r *PostRepository) GetByIDsWithUser(ids []int64) ([]model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []model.Post
	err := r.db.Preload("User").Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

// UpdateVisibility 修改可见性
func (r *PostRepository) UpdateVisibility(id int64, isPrivate bool) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).
		UpdateColumn("is_private", isPrivate).Error
}

// Delete 删除笔记行（显式事务，依赖行由外键级联清理）
func (r *PostRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}
