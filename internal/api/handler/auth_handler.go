package handler

import (
	"errors"
	"io"
	"mime/multipart"

	"redbook-go/internal/api/dto"
	"redbook-go/internal/api/middleware"
	"redbook-go/internal/api/response"
	"redbook-go/internal/service"
	"redbook-go/pkg/imagex"
	"redbook-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户，头像必传，昵称缺省使用用户名
// @Tags 认证
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param nickname formData string false "昵称"
// @Param avatar formData file true "头像图片"
// @Success 201 {object} response.Response{data=dto.UserResponse} "注册成功"
// @Failure 400 {object} response.ErrorResponse "参数无效或用户名已被注册"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	avatar, err := readFormFile(c, "avatar")
	if err != nil {
		response.BadRequest(c, "头像文件读取失败")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Nickname, avatar)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, "注册成功", dto.ToUserResponse(user))
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名密码登录，返回 JWT Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure 401 {object} response.ErrorResponse "用户名或密码错误"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "登录成功", dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}

// Logout 退出登录
// @Summary 退出登录
// @Description 吊销当前 Token
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "退出成功"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetCurrentClaims(c)
	if !ok {
		response.Unauthorized(c, "缺少认证信息")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		logger.Error("Logout failed", zap.Error(err))
		response.InternalError(c, "退出登录失败")
		return
	}

	response.OK(c, "退出登录成功", nil)
}

// Me 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserResponse} "获取成功"
// @Router /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	user, err := h.authService.GetByID(userID)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "获取用户信息成功", dto.ToUserResponse(user))
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Description 更新昵称和头像，只更新提交的字段
// @Tags 认证
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param nickname formData string false "昵称"
// @Param avatar formData file false "头像图片"
// @Success 200 {object} response.Response{data=dto.UserResponse} "更新成功"
// @Router /users/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	avatar, err := readFormFile(c, "avatar")
	if err != nil {
		response.BadRequest(c, "头像文件读取失败")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req.Nickname, avatar)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "更新资料成功", dto.ToUserResponse(user))
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameTooShort),
		errors.Is(err, service.ErrUsernameTooLong),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong),
		errors.Is(err, service.ErrNicknameRequired),
		errors.Is(err, service.ErrNicknameTooLong),
		errors.Is(err, service.ErrAvatarRequired),
		errors.Is(err, service.ErrUsernameTaken):
		response.BadRequest(c, err.Error())
	case isUploadError(err):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Auth operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// isUploadError 文件校验类错误统一按参数错误处理
func isUploadError(err error) bool {
	return errors.Is(err, imagex.ErrEmptyFile) ||
		errors.Is(err, imagex.ErrImageTooLarge) ||
		errors.Is(err, imagex.ErrVideoTooLarge) ||
		errors.Is(err, imagex.ErrBadImageType) ||
		errors.Is(err, imagex.ErrBadVideoType) ||
		errors.Is(err, imagex.ErrNotAnImage) ||
		errors.Is(err, imagex.ErrContentMismatch)
}

// readFormFile 读取可选的表单文件，未上传返回 nil
func readFormFile(c *gin.Context, field string) (*service.UploadFile, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readMultipartFile(fileHeader)
}

func readMultipartFile(fileHeader *multipart.FileHeader) (*service.UploadFile, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.UploadFile{Filename: fileHeader.Filename, Data: data}, nil
}

// currentViewerID 当前查看者 ID，未登录为 0
func currentViewerID(c *gin.Context) int64 {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return 0
	}
	return userID
}
