package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"redbook-go/internal/config"
	"redbook-go/internal/infra/kafka"
	"redbook-go/internal/infra/minio"
	"redbook-go/internal/model"
	"redbook-go/internal/repository"
	"redbook-go/pkg/imagex"
	"redbook-go/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("笔记不存在")
	ErrNoPermission    = errors.New("无权操作该笔记")
	ErrTitleRequired   = errors.New("标题不能为空")
	ErrTitleTooLong    = errors.New("标题不能超过100个字符")
	ErrContentTooLong  = errors.New("内容不能超过10000个字符")
	ErrCategoryTooLong = errors.New("分类不能超过50个字符")
	ErrImageRequired   = errors.New("至少需要上传一张图片")
)

var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// PostDetail 笔记详情及针对当前查看者的状态
type PostDetail struct {
	Post        *model.Post
	Images      []model.PostImage
	IsLiked     bool
	IsCollected bool
}

type PostService struct {
	postRepo       *repository.PostRepository
	likeRepo       *repository.LikeRepository
	collectionRepo *repository.CollectionRepository
	searchService  *SearchService
}

func NewPostService(
	postRepo *repository.PostRepository,
	likeRepo *repository.LikeRepository,
	collectionRepo *repository.CollectionRepository,
	searchService *SearchService,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		likeRepo:       likeRepo,
		collectionRepo: collectionRepo,
		searchService:  searchService,
	}
}

// Create 发布笔记。媒体先上传对象存储再落库，任何一步失败都回收已上传的对象。
func (s *PostService) Create(ctx context.Context, userID int64, title, content, category string, isPrivate bool, images []UploadFile, video *UploadFile) (*PostDetail, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len([]rune(title)) > 100 {
		return nil, ErrTitleTooLong
	}
	if len([]rune(content)) > 10000 {
		return nil, ErrContentTooLong
	}
	if len([]rune(category)) > 50 {
		return nil, ErrCategoryTooLong
	}
	// 纯视频笔记也必须带图，首图作为封面
	if len(images) == 0 {
		return nil, ErrImageRequired
	}
	if category == "" {
		category = "推荐"
	}

	// 先整体校验，避免传了一半才发现有坏文件
	for _, img := range images {
		if err := imagex.ValidateImage(img.Data, img.Filename); err != nil {
			return nil, err
		}
	}
	if video != nil {
		if err := imagex.ValidateVideo(video.Data, video.Filename); err != nil {
			return nil, err
		}
	}

	cfg := config.GetMinIO()

	type uploaded struct {
		bucket string
		object string
	}
	var uploadedObjects []uploaded
	cleanup := func() {
		for _, u := range uploadedObjects {
			if err := minio.Delete(context.Background(), u.bucket, u.object); err != nil {
				logger.Warn("Failed to clean up uploaded object",
					zap.String("bucket", u.bucket),
					zap.String("object", u.object),
					zap.Error(err),
				)
			}
		}
	}

	imageURLs := make([]string, 0, len(images))
	for _, img := range images {
		normalized, err := imagex.NormalizeJPEG(img.Data)
		if err != nil {
			cleanup()
			return nil, err
		}
		objectName := fmt.Sprintf("posts/%s.jpg", uuid.NewString())
		if _, err := minio.UploadBytes(ctx, cfg.ImageBucket, objectName, normalized, "image/jpeg"); err != nil {
			cleanup()
			return nil, err
		}
		uploadedObjects = append(uploadedObjects, uploaded{cfg.ImageBucket, objectName})
		imageURLs = append(imageURLs, minio.GetPublicURL(cfg.Endpoint, cfg.UseSSL, cfg.ImageBucket, objectName))
	}

	var videoURL *string
	if video != nil {
		ext := imagex.Ext(video.Filename)
		objectName := fmt.Sprintf("videos/%s%s", uuid.NewString(), ext)
		if _, err := minio.UploadBytes(ctx, cfg.VideoBucket, objectName, video.Data, videoContentTypes[ext]); err != nil {
			cleanup()
			return nil, err
		}
		uploadedObjects = append(uploadedObjects, uploaded{cfg.VideoBucket, objectName})
		url := minio.GetPublicURL(cfg.Endpoint, cfg.UseSSL, cfg.VideoBucket, objectName)
		videoURL = &url
	}

	post, imageRows := buildPost(userID, title, content, category, isPrivate, imageURLs, videoURL)

	if err := s.postRepo.CreateWithImages(post, imageRows); err != nil {
		cleanup()
		return nil, fmt.Errorf("create post: %w", err)
	}

	logger.Info("Post created",
		zap.Int64("post_id", post.ID),
		zap.Int64("user_id", userID),
		zap.Int("images", len(imageURLs)),
		zap.Bool("has_video", video != nil),
	)

	s.sendIndexEvent(ctx, kafka.IndexActionUpsert, post.ID)

	return &PostDetail{Post: post, Images: imageRows}, nil
}

// Feed 笔记流。有搜索词且 ES 可用时走全文检索，失败降级到数据库模糊匹配。
func (s *PostService) Feed(ctx context.Context, viewerID int64, search, category string, limit, offset int) ([]model.Post, error) {
	search = strings.TrimSpace(search)
	if category == "推荐" {
		category = ""
	}

	if search != "" && s.searchService.Available() {
		ids, err := s.searchService.SearchPostIDs(ctx, search, category, limit, offset)
		if err == nil {
			return s.postsInOrder(ids)
		}
		logger.Warn("Search fell back to database", zap.Error(err))
	}

	ordering := OrderingFor(search, category)
	posts, err := s.postRepo.ListFeed(limit, offset, search, category, ordering.OrderClause())
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return posts, nil
}

// postsInOrder 按给定 ID 顺序回表取笔记
func (s *PostService) postsInOrder(ids []int64) ([]model.Post, error) {
	posts, err := s.postRepo.GetByIDsWithUser(ids)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	byID := make(map[int64]model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	ordered := make([]model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// Detail 笔记详情。私密笔记只有作者可见，对外表现为不存在。
func (s *PostService) Detail(ctx context.Context, postID, viewerID int64) (*PostDetail, error) {
	post, err := s.visiblePost(postID, viewerID)
	if err != nil {
		return nil, err
	}

	images, err := s.postRepo.GetImages(postID)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}

	detail := &PostDetail{Post: post, Images: images}
	if viewerID > 0 {
		if detail.IsLiked, err = s.likeRepo.Exists(viewerID, postID); err != nil {
			return nil, err
		}
		if detail.IsCollected, err = s.collectionRepo.Exists(viewerID, postID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// visiblePost 加载笔记并套用隐私规则
func (s *PostService) visiblePost(postID, viewerID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByIDWithUser(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("query post: %w", err)
	}
	if post.IsPrivate && post.UserID != viewerID {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListByUser 某用户的笔记，本人可见全部，他人只见公开
func (s *PostService) ListByUser(targetID, viewerID int64) ([]model.Post, error) {
	return s.postRepo.ListByUser(targetID, targetID != viewerID)
}

// ListLiked 某用户点赞过的公开笔记
func (s *PostService) ListLiked(userID int64) ([]model.Post, error) {
	return s.postRepo.ListLikedByUser(userID)
}

// ListCollected 某用户收藏过的公开笔记
func (s *PostService) ListCollected(userID int64) ([]model.Post, error) {
	return s.postRepo.ListCollectedByUser(userID)
}

// SetVisibility 修改可见性，仅作者可操作
func (s *PostService) SetVisibility(ctx context.Context, postID, userID int64, isPrivate bool) error {
	post, err := s.ownedPost(postID, userID)
	if err != nil {
		return err
	}
	if post.IsPrivate == isPrivate {
		return nil
	}

	if err := s.postRepo.UpdateVisibility(postID, isPrivate); err != nil {
		return fmt.Errorf("update visibility: %w", err)
	}

	s.sendIndexEvent(ctx, kafka.IndexActionUpsert, postID)
	return nil
}

// Delete 删除笔记，仅作者可操作。数据库删除成功后尽力回收对象存储里的媒体。
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.ownedPost(postID, userID)
	if err != nil {
		return err
	}

	images, err := s.postRepo.GetImages(postID)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	cfg := config.GetMinIO()
	for _, img := range images {
		s.deleteBlob(cfg.ImageBucket, img.ImageURL)
	}
	if post.ImageURL != "" && len(images) == 0 {
		s.deleteBlob(cfg.ImageBucket, post.ImageURL)
	}
	if post.VideoURL != nil {
		s.deleteBlob(cfg.VideoBucket, *post.VideoURL)
	}

	logger.Info("Post deleted", zap.Int64("post_id", postID), zap.Int64("user_id", userID))

	s.sendIndexEvent(ctx, kafka.IndexActionDelete, postID)
	return nil
}

// ownedPost 加载笔记并校验归属
func (s *PostService) ownedPost(postID, userID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("query post: %w", err)
	}
	if post.UserID != userID {
		return nil, ErrNoPermission
	}
	return post, nil
}

// deleteBlob 按公开 URL 回收对象，失败只记日志
func (s *PostService) deleteBlob(bucket, url string) {
	objectName, ok := objectNameFromURL(bucket, url)
	if !ok {
		return
	}
	if err := minio.Delete(context.Background(), bucket, objectName); err != nil {
		logger.Warn("Failed to delete object",
			zap.String("bucket", bucket),
			zap.String("object", objectName),
			zap.Error(err),
		)
	}
}

// buildPost 组装笔记及其图片行，首图写入封面字段
func buildPost(userID int64, title, content, category string, isPrivate bool, imageURLs []string, videoURL *string) (*model.Post, []model.PostImage) {
	post := &model.Post{
		UserID:    userID,
		Title:     title,
		Content:   content,
		ImageURL:  imageURLs[0],
		Category:  category,
		IsPrivate: isPrivate,
		VideoURL:  videoURL,
	}

	imageRows := make([]model.PostImage, len(imageURLs))
	for i, url := range imageURLs {
		imageRows[i] = model.PostImage{ImageURL: url}
	}
	return post, imageRows
}

// objectNameFromURL 从公开 URL 还原对象名
func objectNameFromURL(bucket, url string) (string, bool) {
	marker := "/" + bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	objectName := url[idx+len(marker):]
	return objectName, objectName != ""
}

// sendIndexEvent 发送索引事件，失败不影响主流程
func (s *PostService) sendIndexEvent(ctx context.Context, action string, postID int64) {
	topic := config.GetKafka().Topics["post_index"]
	if topic == "" {
		return
	}
	event := &kafka.PostIndexEvent{Action: action, PostID: postID}
	if err := kafka.SendPostIndexEvent(ctx, topic, event); err != nil {
		logger.Warn("Failed to send post index event",
			zap.Int64("post_id", postID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
