package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"redbook-go/internal/config"
	"redbook-go/internal/infra/minio"
	"redbook-go/internal/infra/redis"
	"redbook-go/internal/model"
	"redbook-go/internal/repository"
	"redbook-go/pkg/imagex"
	"redbook-go/pkg/logger"
	"redbook-go/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUsernameTooShort   = errors.New("用户名至少需要3个字符")
	ErrUsernameTooLong    = errors.New("用户名不能超过50个字符")
	ErrPasswordTooShort   = errors.New("密码至少需要6个字符")
	ErrPasswordTooLong    = errors.New("密码不能超过128个字符")
	ErrNicknameRequired   = errors.New("昵称不能为空")
	ErrNicknameTooLong    = errors.New("昵称不能超过50个字符")
	ErrAvatarRequired     = errors.New("请上传头像")
	ErrUsernameTaken      = errors.New("用户名已被注册")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

// UploadFile 上传文件的内存表示
type UploadFile struct {
	Filename string
	Data     []byte
}

type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 注册新用户。头像必传，昵称缺省使用用户名
func (s *AuthService) Register(ctx context.Context, username, password, nickname string, avatar *UploadFile) (*model.User, error) {
	username = strings.TrimSpace(username)
	nickname = strings.TrimSpace(nickname)

	if len([]rune(username)) < 3 {
		return nil, ErrUsernameTooShort
	}
	if len([]rune(username)) > 50 {
		return nil, ErrUsernameTooLong
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if len(password) > 128 {
		return nil, ErrPasswordTooLong
	}
	if len([]rune(nickname)) > 50 {
		return nil, ErrNicknameTooLong
	}
	if avatar == nil {
		return nil, ErrAvatarRequired
	}
	if nickname == "" {
		nickname = username
	}

	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	url, err := s.uploadAvatar(ctx, avatar)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  username,
		Password:  hash,
		Nickname:  nickname,
		AvatarURL: &url,
	}

	if err := s.userRepo.Create(user); err != nil {
		// 并发注册同名时预检查会漏掉，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return user, nil
}

// Login 登录，用户不存在与密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("query user: %w", err)
	}

	if !utils.VerifyPassword(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return user, token, nil
}

// Logout 将当前 Token 的 JTI 拉黑到过期为止
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := redis.DenyToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("deny token: %w", err)
	}
	logger.Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// GetByID 查询用户信息
func (s *AuthService) GetByID(id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile 更新昵称和头像，只更新给定的字段
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, nickname *string, avatar *UploadFile) (*model.User, error) {
	updates := make(map[string]interface{})

	if nickname != nil {
		trimmed := strings.TrimSpace(*nickname)
		if trimmed == "" {
			return nil, ErrNicknameRequired
		}
		if len([]rune(trimmed)) > 50 {
			return nil, ErrNicknameTooLong
		}
		updates["nickname"] = trimmed
	}

	if avatar != nil {
		url, err := s.uploadAvatar(ctx, avatar)
		if err != nil {
			return nil, err
		}
		updates["avatar_url"] = url
	}

	if len(updates) == 0 {
		return s.GetByID(userID)
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// uploadAvatar 校验、转码并上传头像，返回公开访问 URL
func (s *AuthService) uploadAvatar(ctx context.Context, avatar *UploadFile) (string, error) {
	if err := imagex.ValidateImage(avatar.Data, avatar.Filename); err != nil {
		return "", err
	}

	normalized, err := imagex.NormalizeJPEG(avatar.Data)
	if err != nil {
		return "", err
	}

	cfg := config.GetMinIO()
	objectName := fmt.Sprintf("avatars/%s.jpg", uuid.NewString())
	if _, err := minio.UploadBytes(ctx, cfg.ImageBucket, objectName, normalized, "image/jpeg"); err != nil {
		return "", err
	}

	return minio.GetPublicURL(cfg.Endpoint, cfg.UseSSL, cfg.ImageBucket, objectName), nil
}
