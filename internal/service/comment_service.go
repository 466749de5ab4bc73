package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"redbook-go/internal/model"
	"redbook-go/internal/repository"
	"redbook-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("评论不存在")
	ErrEmptyComment    = errors.New("评论内容不能为空")
	ErrCommentTooLong  = errors.New("评论内容不能超过1000个字符")
)

// CommentWithState 评论及当前查看者的点赞状态
type CommentWithState struct {
	Comment model.Comment
	IsLiked bool
}

type CommentService struct {
	commentRepo     *repository.CommentRepository
	commentLikeRepo *repository.CommentLikeRepository
	postRepo        *repository.PostRepository
	userRepo        *repository.UserRepository
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	commentLikeRepo *repository.CommentLikeRepository,
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo:     commentRepo,
		commentLikeRepo: commentLikeRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
	}
}

// Create 发表评论，私密笔记只有作者能评论
func (s *CommentService) Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	if len([]rune(content)) > 1000 {
		return nil, ErrCommentTooLong
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("query post: %w", err)
	}
	if post.IsPrivate && post.UserID != userID {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// 带上作者信息返回
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		logger.Warn("Failed to load comment author", zap.Int64("user_id", userID), zap.Error(err))
	} else {
		comment.User = *user
	}

	logger.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("post_id", postID),
		zap.Int64("user_id", userID),
	)
	return comment, nil
}

// List 笔记下的评论，登录用户附带每条评论的点赞状态
func (s *CommentService) List(ctx context.Context, postID, viewerID int64) ([]CommentWithState, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("query post: %w", err)
	}
	if post.IsPrivate && post.UserID != viewerID {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	liked := map[int64]bool{}
	if viewerID > 0 && len(comments) > 0 {
		ids := make([]int64, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		if liked, err = s.commentLikeRepo.BatchCheckLiked(viewerID, ids); err != nil {
			return nil, err
		}
	}

	result := make([]CommentWithState, len(comments))
	for i, c := range comments {
		result[i] = CommentWithState{Comment: c, IsLiked: liked[c.ID]}
	}
	return result, nil
}
