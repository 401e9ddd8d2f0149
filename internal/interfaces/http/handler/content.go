package handler

import (
	"github.com/gin-gonic/gin"

	appcontent "foligo-api/internal/application/content"
	"foligo-api/internal/application/project"
	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/interfaces/http/dto"
	"foligo-api/internal/interfaces/http/middleware"
)

// ContentHandler 内容处理器
type ContentHandler struct {
	contents *appcontent.Service
	projects *project.Service
}

// NewContentHandler 创建内容处理器
func NewContentHandler(contents *appcontent.Service, projects *project.Service) *ContentHandler {
	return &ContentHandler{contents: contents, projects: projects}
}

// ListContents 列出项目内容
// @Summary 内容列表
// @Tags Content
// @Produce json
// @Param pid path string true "项目 ID"
// @Param kind query string false "内容类型"
// @Param status query string false "内容状态"
// @Success 200 {object} dto.Response[[]dto.ContentResponse]
// @Router /v1/projects/{pid}/contents [get]
func (h *ContentHandler) ListContents(c *gin.Context) {
	if _, err := h.projects.RequireOwnership(c.Request.Context(), c.Param("pid"), middleware.GetUserIDFromGin(c)); err != nil {
		dto.Fail(c, err)
		return
	}

	filter := &repository.ContentFilter{
		ProjectID: c.Param("pid"),
		Kind:      entity.ContentKind(c.Query("kind")),
		Status:    entity.ContentStatus(c.Query("status")),
	}
	result, err := h.contents.List(c.Request.Context(), filter, bindPagination(c))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.SuccessWithPage(c, dto.NewContentResponses(result.Items), dto.NewPageMeta(result))
}

// GetContent 获取内容
// @Summary 内容详情
// @Tags Content
// @Produce json
// @Param cid path string true "内容 ID"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/contents/{cid} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	content, err := h.requireContent(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewContentResponse(content))
}

// UpdateContent 常规字段更新（旧状态自动留修订快照）
// @Summary 更新内容
// @Tags Content
// @Accept json
// @Produce json
// @Param cid path string true "内容 ID"
// @Param body body dto.UpdateContentRequest true "内容字段"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Router /v1/contents/{cid} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	var req dto.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	content, err := h.requireContent(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	if req.Title != "" {
		content.Title = req.Title
	}
	if req.Excerpt != "" {
		content.Excerpt = req.Excerpt
	}
	if req.Body != "" {
		content.Body = req.Body
	}
	if len(req.StructuredData) > 0 {
		content.StructuredData = req.StructuredData
	}
	if req.Status != "" {
		content.Status = entity.ContentStatus(req.Status)
	}

	updated, err := h.contents.Update(c.Request.Context(), content)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewContentResponse(updated))
}

// DeleteContent 删除内容
// @Summary 删除内容
// @Tags Content
// @Param cid path string true "内容 ID"
// @Success 204
// @Router /v1/contents/{cid} [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	if _, err := h.requireContent(c); err != nil {
		dto.Fail(c, err)
		return
	}
	if err := h.contents.Delete(c.Request.Context(), c.Param("cid")); err != nil {
		dto.Fail(c, err)
		return
	}
	dto.NoContent(c)
}

// ListRevisions 列出内容修订
// @Summary 修订列表
// @Tags Content
// @Produce json
// @Param cid path string true "内容 ID"
// @Success 200 {object} dto.Response[[]dto.ContentResponse]
// @Router /v1/contents/{cid}/revisions [get]
func (h *ContentHandler) ListRevisions(c *gin.Context) {
	if _, err := h.requireContent(c); err != nil {
		dto.Fail(c, err)
		return
	}
	revisions, err := h.contents.ListRevisions(c.Request.Context(), c.Param("cid"))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewContentResponses(revisions))
}

// RestoreRevision 恢复修订
// @Summary 把修订快照恢复为当前内容
// @Tags Content
// @Produce json
// @Param cid path string true "内容 ID"
// @Param rid path string true "修订 ID"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Router /v1/contents/{cid}/revisions/{rid}/restore [post]
func (h *ContentHandler) RestoreRevision(c *gin.Context) {
	if _, err := h.requireContent(c); err != nil {
		dto.Fail(c, err)
		return
	}
	restored, err := h.contents.RestoreRevision(c.Request.Context(), c.Param("cid"), c.Param("rid"))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewContentResponse(restored))
}

// requireContent 加载内容并校验所属项目归当前用户
func (h *ContentHandler) requireContent(c *gin.Context) (*entity.Content, error) {
	ctx := c.Request.Context()
	content, err := h.contents.Get(ctx, c.Param("cid"))
	if err != nil {
		return nil, err
	}
	if _, err := h.projects.RequireOwnership(ctx, content.ProjectID, middleware.GetUserIDFromGin(c)); err != nil {
		return nil, err
	}
	return content, nil
}
