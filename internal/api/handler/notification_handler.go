package handler

import (
	"redbook-go/internal/api/dto"
	"redbook-go/internal/api/middleware"
	"redbook-go/internal/api/response"
	"redbook-go/internal/service"
	"redbook-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List 通知列表
// @Summary 通知列表
// @Description 当前用户收到的通知，按时间倒序
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.NotificationResponse} "获取成功"
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	notifications, err := h.notificationService.List(c.Request.Context(), userID)
	if err != nil {
		logger.Error("List notifications failed", zap.Error(err))
		response.InternalError(c, "获取通知列表失败")
		return
	}

	response.OK(c, "获取通知列表成功", dto.ToNotificationResponses(notifications))
}

// MarkAllRead 全部标记已读
// @Summary 全部标记已读
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "标记成功"
// @Router /notifications/read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		logger.Error("Mark notifications read failed", zap.Error(err))
		response.InternalError(c, "标记已读失败")
		return
	}

	response.OK(c, "标记已读成功", nil)
}
