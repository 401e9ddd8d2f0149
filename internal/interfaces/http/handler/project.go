package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"foligo-api/internal/application/project"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/interfaces/http/dto"
	"foligo-api/internal/interfaces/http/middleware"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projects *project.Service
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projects *project.Service) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// ListProjects 列出当前用户的项目
// @Summary 项目列表
// @Tags Project
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} dto.Response[[]dto.ProjectResponse]
// @Router /v1/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	result, err := h.projects.List(c.Request.Context(), middleware.GetUserIDFromGin(c), bindPagination(c))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.SuccessWithPage(c, dto.NewProjectResponses(result.Items), dto.NewPageMeta(result))
}

// CreateProject 创建项目
// @Summary 创建项目
// @Tags Project
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "项目信息"
// @Success 201 {object} dto.Response[dto.ProjectResponse]
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.projects.Create(c.Request.Context(), middleware.GetUserIDFromGin(c), req.Name, req.Subdomain)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, dto.NewProjectResponse(p))
}

// GetProject 获取项目
// @Summary 项目详情
// @Tags Project
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.projects.RequireOwnership(c.Request.Context(), c.Param("pid"), middleware.GetUserIDFromGin(c))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewProjectResponse(p))
}

// GetProjectBySubdomain 站点渲染入口
// @Summary 按子域名获取项目（公开）
// @Tags Project
// @Produce json
// @Param subdomain path string true "子域名"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/sites/{subdomain} [get]
func (h *ProjectHandler) GetProjectBySubdomain(c *gin.Context) {
	p, err := h.projects.GetBySubdomain(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewProjectResponse(p))
}

// UpdateProject 更新项目
// @Summary 更新项目
// @Tags Project
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.UpdateProjectRequest true "项目信息"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Router /v1/projects/{pid} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.projects.RequireOwnership(c.Request.Context(), c.Param("pid"), middleware.GetUserIDFromGin(c))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Subdomain != "" {
		p.Subdomain = req.Subdomain
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Bio != "" {
		p.Bio = req.Bio
	}
	if req.Settings != nil {
		p.Settings = req.Settings
	}
	if req.Published != nil {
		p.Published = *req.Published
	}

	updated, err := h.projects.Update(c.Request.Context(), p)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewProjectResponse(updated))
}

// DeleteProject 删除项目
// @Summary 删除项目
// @Tags Project
// @Param pid path string true "项目 ID"
// @Success 204
// @Router /v1/projects/{pid} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if _, err := h.projects.RequireOwnership(c.Request.Context(), c.Param("pid"), middleware.GetUserIDFromGin(c)); err != nil {
		dto.Fail(c, err)
		return
	}
	if err := h.projects.Delete(c.Request.Context(), c.Param("pid")); err != nil {
		dto.Fail(c, err)
		return
	}
	dto.NoContent(c)
}

// bindPagination 解析分页查询参数
func bindPagination(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return repository.NewPagination(page, pageSize)
}
