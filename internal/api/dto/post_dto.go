package dto

import (
	"time"

	"redbook-go/internal/model"
	"redbook-go/internal/service"
)

// CreatePostRequest 发布笔记请求（multipart 表单，媒体文件另取）
type CreatePostRequest struct {
	Title     string `form:"title" binding:"required"`
	Content   string `form:"content"`
	Category  string `form:"category"`
	IsPrivate bool   `form:"is_private"`
}

// SetVisibilityRequest 修改可见性请求
type SetVisibilityRequest struct {
	IsPrivate *bool `json:"is_private" binding:"required"`
}

// FeedQuery 笔记流查询参数
type FeedQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// Normalize 约束分页范围
func (q *FeedQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
}

// Offset 返回分页偏移量
func (q *FeedQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PostSummaryResponse 笔记流中的单条笔记
type PostSummaryResponse struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	ImageURL   string       `json:"image_url"`
	VideoURL   *string      `json:"video_url"`
	Category   string       `json:"category"`
	IsPrivate  bool         `json:"is_private"`
	LikesCount int64        `json:"likes_count"`
	CreatedAt  time.Time    `json:"created_at"`
	Author     UserResponse `json:"author"`
}

// PostDetailResponse 笔记详情
type PostDetailResponse struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ImageURL    string       `json:"image_url"`
	Images      []string     `json:"images"`
	VideoURL    *string      `json:"video_url"`
	Category    string       `json:"category"`
	IsPrivate   bool         `json:"is_private"`
	LikesCount  int64        `json:"likes_count"`
	IsLiked     bool         `json:"is_liked"`
	IsCollected bool         `json:"is_collected"`
	CreatedAt   time.Time    `json:"created_at"`
	Author      UserResponse `json:"author"`
}

// ToggleResponse 点赞/收藏开关结果
type ToggleResponse struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

// ToPostSummaryResponse 模型转笔记流响应
func ToPostSummaryResponse(post *model.Post) PostSummaryResponse {
	return PostSummaryResponse{
		ID:         post.ID,
		Title:      post.Title,
		ImageURL:   post.ImageURL,
		VideoURL:   post.VideoURL,
		Category:   post.Category,
		IsPrivate:  post.IsPrivate,
		LikesCount: post.LikesCount,
		CreatedAt:  post.CreatedAt,
		Author:     ToUserResponse(&post.User),
	}
}

// ToPostSummaryResponses 批量转换
func ToPostSummaryResponses(posts []model.Post) []PostSummaryResponse {
	result := make([]PostSummaryResponse, len(posts))
	for i := range posts {
		result[i] = ToPostSummaryResponse(&posts[i])
	}
	return result
}

// ToPostDetailResponse 笔记详情转响应
func ToPostDetailResponse(detail *service.PostDetail) PostDetailResponse {
	images := make([]string, len(detail.Images))
	for i, img := range detail.Images {
		images[i] = img.ImageURL
	}

	return PostDetailResponse{
		ID:          detail.Post.ID,
		Title:       detail.Post.Title,
		Content:     detail.Post.Content,
		ImageURL:    detail.Post.ImageURL,
		Images:      images,
		VideoURL:    detail.Post.VideoURL,
		Category:    detail.Post.Category,
		IsPrivate:   detail.Post.IsPrivate,
		LikesCount:  detail.Post.LikesCount,
		IsLiked:     detail.IsLiked,
		IsCollected: detail.IsCollected,
		CreatedAt:   detail.Post.CreatedAt,
		Author:      ToUserResponse(&detail.Post.User),
	}
}
