package dto

import (
	"time"

	"redbook-go/internal/model"
	"redbook-go/internal/service"
)

// RegisterRequest 注册请求（multipart 表单，头像文件另取）
type RegisterRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Nickname string `form:"nickname"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 更新资料请求（multipart 表单，头像文件另取）
type UpdateProfileRequest struct {
	Nickname *string `form:"nickname"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserProfileResponse 用户主页响应
type UserProfileResponse struct {
	UserResponse
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
}

// UserWithFollowResponse 关注/粉丝列表中的一项
type UserWithFollowResponse struct {
	UserResponse
	IsFollowing bool `json:"is_following"`
}

// ToUserResponse 模型转响应
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Nickname:  user.Nickname,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserProfileResponse 用户主页转响应
func ToUserProfileResponse(profile *service.UserProfile) UserProfileResponse {
	return UserProfileResponse{
		UserResponse:   ToUserResponse(profile.User),
		FollowersCount: profile.FollowersCount,
		FollowingCount: profile.FollowingCount,
		IsFollowing:    profile.IsFollowing,
	}
}

// ToUserWithFollowResponses 关注列表转响应
func ToUserWithFollowResponses(users []service.UserWithFollow) []UserWithFollowResponse {
	result := make([]UserWithFollowResponse, len(users))
	for i, u := range users {
		user := u.User
		result[i] = UserWithFollowResponse{
			UserResponse: ToUserResponse(&user),
			IsFollowing:  u.IsFollowing,
		}
	}
	return result
}
