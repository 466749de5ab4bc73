package handler

import (
	"redbook-go/internal/api/dto"
	"redbook-go/internal/api/middleware"
	"redbook-go/internal/api/response"
	"redbook-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	interactionService *service.InteractionService
}

func NewCommentHandler(interactionService *service.InteractionService) *CommentHandler {
	return &CommentHandler{interactionService: interactionService}
}

// Like 点赞/取消点赞评论
// @Summary 点赞/取消点赞评论
// @Description 开关语义：已点赞则取消，未点赞则点赞
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response{data=dto.ToggleResponse} "操作成功"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{id}/like [post]
func (h *CommentHandler) Like(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	result, err := h.interactionService.ToggleCommentLike(c.Request.Context(), userID, commentID)
	if err != nil {
		handlePostError(c, err)
		return
	}

	message := "取消点赞成功"
	if result.Active {
		message = "点赞成功"
	}
	response.OK(c, message, dto.ToggleResponse{Active: result.Active, Count: result.Count})
}
