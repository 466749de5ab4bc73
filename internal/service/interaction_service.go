package service

import (
	"context"
	"errors"
	"fmt"

	"redbook-go/internal/model"
	"redbook-go/internal/repository"
	"redbook-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ToggleResult 点赞/收藏开关后的状态
type ToggleResult struct {
	Active bool  // 操作后处于点赞/收藏状态
	Count  int64 // 操作后的计数（收藏无计数时为 0）
}

// InteractionService 点赞、收藏、评论点赞的开关语义。
// 先查后改存在并发窗口，唯一约束冲突按"对方先到"处理成幂等结果。
type InteractionService struct {
	likeRepo        *repository.LikeRepository
	collectionRepo  *repository.CollectionRepository
	commentLikeRepo *repository.CommentLikeRepository
	commentRepo     *repository.CommentRepository
	postRepo        *repository.PostRepository
	userRepo        *repository.UserRepository
	notifRepo       *repository.NotificationRepository
}

func NewInteractionService(
	likeRepo *repository.LikeRepository,
	collectionRepo *repository.CollectionRepository,
	commentLikeRepo *repository.CommentLikeRepository,
	commentRepo *repository.CommentRepository,
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	notifRepo *repository.NotificationRepository,
) *InteractionService {
	return &InteractionService{
		likeRepo:        likeRepo,
		collectionRepo:  collectionRepo,
		commentLikeRepo: commentLikeRepo,
		commentRepo:     commentRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		notifRepo:       notifRepo,
	}
}

// ToggleLike 点赞/取消点赞笔记，返回操作后的状态和点赞数
func (s *InteractionService) ToggleLike(ctx context.Context, userID, postID int64) (*ToggleResult, error) {
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

	liked, err := s.likeRepo.Exists(userID, postID)
	if err != nil {
		return nil, err
	}

	var active bool
	if liked {
		if _, err := s.likeRepo.Remove(userID, postID); err != nil {
			return nil, err
		}
		active = false
	} else {
		err := s.likeRepo.Insert(userID, postID)
		switch {
		case err == nil:
			active = true
			s.notifyPostLiked(ctx, userID, post)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// 并发下对方先点了，结果等价
			active = true
		default:
			return nil, err
		}
	}

	refreshed, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: active, Count: refreshed.LikesCount}, nil
}

// ToggleCollection 收藏/取消收藏笔记
func (s *InteractionService) ToggleCollection(ctx context.Context, userID, postID int64) (*ToggleResult, error) {
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

	collected, err := s.collectionRepo.Exists(userID, postID)
	if err != nil {
		return nil, err
	}

	var active bool
	if collected {
		if _, err := s.collectionRepo.Remove(userID, postID); err != nil {
			return nil, err
		}
	} else {
		err := s.collectionRepo.Insert(userID, postID)
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		active = true
	}

	return &ToggleResult{Active: active}, nil
}

// ToggleCommentLike 点赞/取消点赞评论，返回操作后的状态和点赞数
func (s *InteractionService) ToggleCommentLike(ctx context.Context, userID, commentID int64) (*ToggleResult, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("query comment: %w", err)
	}

	liked, err := s.commentLikeRepo.Exists(userID, commentID)
	if err != nil {
		return nil, err
	}

	var active bool
	if liked {
		if _, err := s.commentLikeRepo.Remove(userID, commentID); err != nil {
			return nil, err
		}
	} else {
		err := s.commentLikeRepo.Insert(userID, commentID)
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		active = true
	}

	refreshed, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: active, Count: refreshed.LikesCount}, nil
}

// notifyPostLiked 给笔记作者写一条点赞通知，失败只记日志
func (s *InteractionService) notifyPostLiked(ctx context.Context, likerID int64, post *model.Post) {
	if post.UserID == likerID {
		return
	}

	liker, err := s.userRepo.GetByID(likerID)
	if err != nil {
		logger.Warn("Failed to load liker for notification", zap.Int64("user_id", likerID), zap.Error(err))
		return
	}

	targetID := post.ID
	notification := &model.Notification{
		ReceiverID: post.UserID,
		SenderID:   likerID,
		Type:       model.NotificationTypeLikePost,
		TargetID:   &targetID,
		Content:    fmt.Sprintf("%s 赞了你的笔记《%s》", liker.Nickname, post.Title),
	}
	if err := s.notifRepo.Create(notification); err != nil {
		logger.Warn("Failed to create like notification",
			zap.Int64("post_id", post.ID),
			zap.Int64("receiver_id", post.UserID),
			zap.Error(err),
		)
	}
}
