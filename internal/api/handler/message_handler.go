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

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send 发送私信
// @Summary 发送私信
// @Tags 私信
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "私信内容"
// @Success 201 {object} response.Response{data=dto.MessageResponse} "发送成功"
// @Failure 400 {object} response.ErrorResponse "不能给自己发私信"
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		handleMessageError(c, err)
		return
	}

	response.Created(c, "发送成功", dto.ToMessageResponse(message))
}

// ListConversations 会话列表
// @Summary 会话列表
// @Description 所有私信往来的对端，按最近消息时间排序，附带最近一条消息和未读数
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.ConversationResponse} "获取成功"
// @Router /messages/conversations [get]
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	conversations, err := h.messageService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		logger.Error("List conversations failed", zap.Error(err))
		response.InternalError(c, "获取会话列表失败")
		return
	}

	response.OK(c, "获取会话列表成功", dto.ToConversationResponses(conversations))
}

// History 会话消息记录
// @Summary 会话消息记录
// @Description 与某用户的消息记录，取最近一页并按时间升序返回
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Param peer_id path int true "对方用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=[]dto.MessageResponse} "获取成功"
// @Router /messages/{peer_id} [get]
func (h *MessageHandler) History(c *gin.Context) {
	peerID, err := parseIDParam(c, "peer_id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	var query dto.FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	query.Normalize()

	messages, err := h.messageService.History(c.Request.Context(), userID, peerID, query.PageSize, query.Offset())
	if err != nil {
		logger.Error("Get message history failed", zap.Error(err))
		response.InternalError(c, "获取消息记录失败")
		return
	}

	response.OK(c, "获取消息记录成功", dto.ToMessageResponses(messages))
}

// MarkRead 标记会话已读
// @Summary 标记会话已读
// @Description 将某用户发来的消息全部标记已读
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Param peer_id path int true "对方用户ID"
// @Success 200 {object} response.Response "标记成功"
// @Router /messages/{peer_id}/read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	peerID, err := parseIDParam(c, "peer_id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.messageService.MarkRead(c.Request.Context(), userID, peerID); err != nil {
		logger.Error("Mark messages read failed", zap.Error(err))
		response.InternalError(c, "标记已读失败")
		return
	}

	response.OK(c, "标记已读成功", nil)
}

// UnreadCount 未读角标
// @Summary 未读角标
// @Description 未读私信数与未读通知数
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UnreadSummaryResponse} "获取成功"
// @Router /unread-count [get]
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	summary, err := h.messageService.UnreadSummary(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Get unread summary failed", zap.Error(err))
		response.InternalError(c, "获取未读数失败")
		return
	}

	response.OK(c, "获取未读数成功", dto.ToUnreadSummaryResponse(summary))
}

func handleMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfMessage),
		errors.Is(err, service.ErrEmptyMessage):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Message operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
