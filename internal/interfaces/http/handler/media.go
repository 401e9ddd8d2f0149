package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foligo-api/internal/application/media"
	"foligo-api/internal/application/project"
	"foligo-api/internal/interfaces/http/dto"
	"foligo-api/internal/interfaces/http/middleware"
	"foligo-api/pkg/logger"
)

// MediaHandler 媒体处理器
type MediaHandler struct {
	media    *media.Service
	projects *project.Service
}

// NewMediaHandler 创建媒体处理器
func NewMediaHandler(mediaService *media.Service, projects *project.Service) *MediaHandler {
	return &MediaHandler{media: mediaService, projects: projects}
}

// Upload 上传媒体文件
// @Summary 上传文件
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param pid path string true "项目 ID"
// @Param file formData file true "文件"
// @Success 201 {object} dto.Response[dto.MediaResponse]
// @Router /v1/projects/{pid}/media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.projects.RequireOwnership(ctx, c.Param("pid"), middleware.GetUserIDFromGin(c)); err != nil {
		dto.Fail(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.BadRequest(c, "file is required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		dto.BadRequest(c, "failed to open uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		dto.BadRequest(c, "failed to read uploaded file")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	m, err := h.media.Upload(ctx, c.Param("pid"), fileHeader.Filename, mimeType, data)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, dto.NewMediaResponse(m))
}

// List 列出项目媒体
// @Summary 媒体列表
// @Tags Media
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.MediaResponse]
// @Router /v1/projects/{pid}/media [get]
func (h *MediaHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.projects.RequireOwnership(ctx, c.Param("pid"), middleware.GetUserIDFromGin(c)); err != nil {
		dto.Fail(c, err)
		return
	}
	items, err := h.media.List(ctx, c.Param("pid"))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewMediaResponses(items))
}

// File 代理下载文件内容
// @Summary 下载文件（经 API 代理，不暴露存储地址）
// @Tags Media
// @Param mid path string true "媒体 ID"
// @Success 200
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/media/{mid}/file [get]
func (h *MediaHandler) File(c *gin.Context) {
	ctx := c.Request.Context()
	m, reader, err := h.media.Open(ctx, c.Param("mid"))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", m.MimeType)
	c.Header("Content-Length", strconv.FormatInt(m.Size, 10))
	c.Header("Content-Disposition", `inline; filename="`+m.FileName+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.Warn(ctx, "media stream interrupted", "media_id", m.ID, "error", err.Error())
	}
}

// Delete 删除媒体
// @Summary 删除文件
// @Tags Media
// @Param mid path string true "媒体 ID"
// @Success 204
// @Router /v1/media/{mid} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.media.Delete(c.Request.Context(), c.Param("mid")); err != nil {
		dto.Fail(c, err)
		return
	}
	dto.NoContent(c)
}
