package handler

import (
	"errors"

	"redbook-go/internal/api/dto"
	"redbook-go/internal/api/middleware"
	"redbook-go/internal/api/response"
	"redbook-go/internal/service"
	"redbook-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	relationService *service.RelationService
	postService     *service.PostService
}

func NewUserHandler(relationService *service.RelationService, postService *service.PostService) *UserHandler {
	return &UserHandler{relationService: relationService, postService: postService}
}

// Profile 用户主页
// @Summary 用户主页
// @Description 用户基本信息、关注/粉丝数以及当前用户是否已关注
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=dto.UserProfileResponse} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id} [get]
func (h *UserHandler) Profile(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	profile, err := h.relationService.Profile(targetID, currentViewerID(c))
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户主页成功", dto.ToUserProfileResponse(profile))
}

// ListPosts 用户的笔记列表
// @Summary 用户的笔记列表
// @Description 本人可见全部笔记，他人只见公开笔记
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.PostSummaryResponse} "获取成功"
// @Router /users/{id}/posts [get]
func (h *UserHandler) ListPosts(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	posts, err := h.postService.ListByUser(targetID, currentViewerID(c))
	if err != nil {
		logger.Error("List user posts failed", zap.Error(err))
		response.InternalError(c, "获取用户笔记失败")
		return
	}

	response.OK(c, "获取用户笔记成功", dto.ToPostSummaryResponses(posts))
}

// ListLiked 用户点赞过的笔记
// @Summary 用户点赞过的笔记
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.PostSummaryResponse} "获取成功"
// @Router /users/{id}/liked [get]
func (h *UserHandler) ListLiked(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	posts, err := h.postService.ListLiked(targetID)
	if err != nil {
		logger.Error("List liked posts failed", zap.Error(err))
		response.InternalError(c, "获取点赞笔记失败")
		return
	}

	response.OK(c, "获取点赞笔记成功", dto.ToPostSummaryResponses(posts))
}

// ListCollections 用户收藏的笔记
// @Summary 用户收藏的笔记
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.PostSummaryResponse} "获取成功"
// @Router /users/{id}/collections [get]
func (h *UserHandler) ListCollections(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	posts, err := h.postService.ListCollected(targetID)
	if err != nil {
		logger.Error("List collected posts failed", zap.Error(err))
		response.InternalError(c, "获取收藏笔记失败")
		return
	}

	response.OK(c, "获取收藏笔记成功", dto.ToPostSummaryResponses(posts))
}

// Follow 关注用户
// @Summary 关注用户
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response "关注成功"
// @Failure 400 {object} response.ErrorResponse "不能关注自己"
// @Router /users/{id}/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.relationService.Follow(c.Request.Context(), userID, targetID); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "关注成功", nil)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response "取消关注成功"
// @Router /users/{id}/follow [delete]
func (h *UserHandler) Unfollow(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.relationService.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "取消关注成功", nil)
}

// ListFollowers 粉丝列表
// @Summary 粉丝列表
// @Tags 关注
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.UserWithFollowResponse} "获取成功"
// @Router /users/{id}/followers [get]
func (h *UserHandler) ListFollowers(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	users, err := h.relationService.ListFollowers(targetID, currentViewerID(c))
	if err != nil {
		logger.Error("List followers failed", zap.Error(err))
		response.InternalError(c, "获取粉丝列表失败")
		return
	}

	response.OK(c, "获取粉丝列表成功", dto.ToUserWithFollowResponses(users))
}

// ListFollowing 关注列表
// @Summary 关注列表
// @Tags 关注
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.UserWithFollowResponse} "获取成功"
// @Router /users/{id}/following [get]
func (h *UserHandler) ListFollowing(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	users, err := h.relationService.ListFollowing(targetID, currentViewerID(c))
	if err != nil {
		logger.Error("List following failed", zap.Error(err))
		response.InternalError(c, "获取关注列表失败")
		return
	}

	response.OK(c, "获取关注列表成功", dto.ToUserWithFollowResponses(users))
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAlreadyFollowing):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
