package handler

import (
	"errors"
	"strconv"

	"redbook-go/internal/api/dto"
	"redbook-go/internal/api/middleware"
	"redbook-go/internal/api/response"
	"redbook-go/internal/service"
	"redbook-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService        *service.PostService
	interactionService *service.InteractionService
	commentService     *service.CommentService
}

func NewPostHandler(
	postService *service.PostService,
	interactionService *service.InteractionService,
	commentService *service.CommentService,
) *PostHandler {
	return &PostHandler{
		postService:        postService,
		interactionService: interactionService,
		commentService:     commentService,
	}
}

// Feed 笔记流
// @Summary 笔记流
// @Description 公开笔记流，支持搜索和分类筛选。推荐流随机排序，搜索结果按相关度。
// @Tags 笔记
// @Produce json
// @Param search query string false "搜索关键词"
// @Param category query string false "分类"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=[]dto.PostSummaryResponse} "获取成功"
// @Router /posts [get]
func (h *PostHandler) Feed(c *gin.Context) {
	var query dto.FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	query.Normalize()

	posts, err := h.postService.Feed(c.Request.Context(), currentViewerID(c),
		query.Search, query.Category, query.PageSize, query.Offset())
	if err != nil {
		logger.Error("Get feed failed", zap.Error(err))
		response.InternalError(c, "获取笔记流失败")
		return
	}

	response.OK(c, "获取笔记流成功", dto.ToPostSummaryResponses(posts))
}

// Create 发布笔记
// @Summary 发布笔记
// @Description 发布笔记，至少需要一张图片（纯视频笔记也要带封面图）。图片统一转码为 JPEG，第一张为封面。
// @Tags 笔记
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param content formData string false "正文"
// @Param category formData string false "分类"
// @Param is_private formData bool false "是否私密"
// @Param images formData file true "图片（可多张，第一张为封面）"
// @Param video formData file false "视频"
// @Success 201 {object} response.Response{data=dto.PostDetailResponse} "发布成功"
// @Failure 400 {object} response.ErrorResponse "参数或文件无效"
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "表单解析失败")
		return
	}

	var images []service.UploadFile
	for _, fh := range form.File["images"] {
		file, err := readMultipartFile(fh)
		if err != nil {
			response.BadRequest(c, "图片文件读取失败")
			return
		}
		images = append(images, *file)
	}

	video, err := readFormFile(c, "video")
	if err != nil {
		response.BadRequest(c, "视频文件读取失败")
		return
	}

	detail, err := h.postService.Create(c.Request.Context(), userID,
		req.Title, req.Content, req.Category, req.IsPrivate, images, video)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.Created(c, "发布成功", dto.ToPostDetailResponse(detail))
}

// Detail 笔记详情
// @Summary 笔记详情
// @Description 笔记详情，包含全部图片和当前用户的点赞收藏状态。私密笔记仅作者可见。
// @Tags 笔记
// @Produce json
// @Param id path int true "笔记ID"
// @Success 200 {object} response.Response{data=dto.PostDetailResponse} "获取成功"
// @Failure 404 {object} response.ErrorResponse "笔记不存在"
// @Router /posts/{id} [get]
func (h *PostHandler) Detail(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的笔记ID")
		return
	}

	detail, err := h.postService.Detail(c.Request.Context(), postID, currentViewerID(c))
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "获取笔记详情成功", dto.ToPostDetailResponse(detail))
}

// Delete 删除笔记
// @Summary 删除笔记
// @Description 删除笔记及其媒体文件，仅作者可操作
// @Tags 笔记
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "无权操作"
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的笔记ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.postService.Delete(c.Request.Context(), postID, userID); err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// SetVisibility 修改可见性
// @Summary 修改可见性
// @Description 设置笔记公开或私密，仅作者可操作
// @Tags 笔记
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Param request body dto.SetVisibilityRequest true "可见性"
// @Success 200 {object} response.Response "设置成功"
// @Router /posts/{id}/visibility [put]
func (h *PostHandler) SetVisibility(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的笔记ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	if err := h.postService.SetVisibility(c.Request.Context(), postID, userID, *req.IsPrivate); err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "设置可见性成功", nil)
}

// Like 点赞/取消点赞笔记
// @Summary 点赞/取消点赞笔记
// @Description 开关语义：已点赞则取消，未点赞则点赞
// @Tags 互动
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Success 200 {object} response.Response{data=dto.ToggleResponse} "操作成功"
// @Router /posts/{id}/like [post]
func (h *PostHandler) Like(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的笔记ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	result, err := h.interactionService.ToggleLike(c.Request.Context(), userID, postID)
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

// Collect 收藏/取消收藏笔记
// @Summary 收藏/取消收藏笔记
// @Description 开关语义：已收藏则取消，未收藏则收藏
// @Tags 互动
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Success 200 {object} response.Response{data=dto.ToggleResponse} "操作成功"
// @Router /posts/{id}/collect [post]
func (h *PostHandler) Collect(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的笔记ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	result, err := h.interactionService.ToggleCollection(c.Request.Context(), userID, postID)
	if err != nil {
		handlePostError(c, err)
		return
	}

	message := "取消收藏成功"
	if result.Active {
		message = "收藏成功"
	}
	response.OK(c, message, dto.ToggleResponse{Active: result.Active})
}

// ListComments 笔记评论列表
// @Summary 笔记评论列表
// @Tags 评论
// @Produce json
// @Param id path int true "笔记ID"
// @Success 200 {object} response.Response{data=[]dto.CommentResponse} "获取成功"
// @Router /posts/{id}/comments [get]
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的笔记ID")
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), postID, currentViewerID(c))
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", dto.ToCommentResponses(comments))
}

// CreateComment 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Param request body dto.CreateCommentRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentResponse} "发表成功"
// @Router /posts/{id}/comments [post]
func (h *PostHandler) CreateComment(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的笔记ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, postID, req.Content)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.Created(c, "发表评论成功", dto.ToCommentResponse(comment, false))
}

func handlePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrContentTooLong),
		errors.Is(err, service.ErrCategoryTooLong),
		errors.Is(err, service.ErrImageRequired),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrCommentTooLong):
		response.BadRequest(c, err.Error())
	case isUploadError(err):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Post operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// parseIDParam 解析路径中的整型 ID
func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
