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

var (
	ErrSelfFollow       = errors.New("不能关注自己")
	ErrAlreadyFollowing = errors.New("已经关注过该用户")
)

// UserWithFollow 用户及查看者对其的关注状态
type UserWithFollow struct {
	User        model.User
	IsFollowing bool
}

// UserProfile 用户主页信息
type UserProfile struct {
	User           *model.User
	FollowersCount int64
	FollowingCount int64
	IsFollowing    bool
}

type RelationService struct {
	followRepo *repository.FollowRepository
	userRepo   *repository.UserRepository
}

func NewRelationService(followRepo *repository.FollowRepository, userRepo *repository.UserRepository) *RelationService {
	return &RelationService{followRepo: followRepo, userRepo: userRepo}
}

// Follow 关注用户，重复关注报错
func (s *RelationService) Follow(ctx context.Context, userID, targetID int64) error {
	if userID == targetID {
		return ErrSelfFollow
	}

	exists, err := s.userRepo.ExistsByID(targetID)
	if err != nil {
		return fmt.Errorf("check target user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	following, err := s.followRepo.Exists(userID, targetID)
	if err != nil {
		return fmt.Errorf("check follow: %w", err)
	}
	if following {
		return ErrAlreadyFollowing
	}

	if err := s.followRepo.Insert(userID, targetID); err != nil {
		// 并发重复关注时预检查会漏掉，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("create follow: %w", err)
	}

	logger.Info("User followed", zap.Int64("follower_id", userID), zap.Int64("followed_id", targetID))
	return nil
}

// Unfollow 取消关注，未关注时幂等
func (s *RelationService) Unfollow(ctx context.Context, userID, targetID int64) error {
	if _, err := s.followRepo.Remove(userID, targetID); err != nil {
		return fmt.Errorf("remove follow: %w", err)
	}
	return nil
}

// IsFollowing 查看者是否关注了目标用户
func (s *RelationService) IsFollowing(viewerID, targetID int64) (bool, error) {
	if viewerID <= 0 {
		return false, nil
	}
	return s.followRepo.Exists(viewerID, targetID)
}

// Profile 用户主页：基本信息、关注/粉丝数、查看者的关注状态
func (s *RelationService) Profile(targetID, viewerID int64) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	followers, err := s.followRepo.CountFollowers(targetID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(targetID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID > 0 && viewerID != targetID {
		if isFollowing, err = s.followRepo.Exists(viewerID, targetID); err != nil {
			return nil, err
		}
	}

	return &UserProfile{
		User:           user,
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}

// ListFollowing 某用户关注的人，附带查看者对每个人的关注状态
func (s *RelationService) ListFollowing(targetID, viewerID int64) ([]UserWithFollow, error) {
	users, err := s.followRepo.ListFollowing(targetID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return s.annotateFollowing(users, viewerID)
}

// ListFollowers 关注某用户的人，附带查看者对每个人的关注状态
func (s *RelationService) ListFollowers(targetID, viewerID int64) ([]UserWithFollow, error) {
	users, err := s.followRepo.ListFollowers(targetID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return s.annotateFollowing(users, viewerID)
}

func (s *RelationService) annotateFollowing(users []model.User, viewerID int64) ([]UserWithFollow, error) {
	following := map[int64]bool{}
	if viewerID > 0 && len(users) > 0 {
		ids := make([]int64, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		var err error
		if following, err = s.followRepo.BatchCheckFollowing(viewerID, ids); err != nil {
			return nil, err
		}
	}

	result := make([]UserWithFollow, len(users))
	for i, u := range users {
		result[i] = UserWithFollow{User: u, IsFollowing: following[u.ID]}
	}
	return result, nil
}
