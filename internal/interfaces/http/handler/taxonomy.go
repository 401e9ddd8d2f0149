package handler

import (
	"github.com/gin-gonic/gin"

	"foligo-api/internal/application/project"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/interfaces/http/dto"
	"foligo-api/internal/interfaces/http/middleware"
	apperrors "foligo-api/pkg/errors"
)

// TaxonomyHandler 技能/标签处理器
type TaxonomyHandler struct {
	skills   repository.SkillRepository
	tags     repository.TagRepository
	projects *project.Service
}

// NewTaxonomyHandler 创建技能/标签处理器
func NewTaxonomyHandler(skills repository.SkillRepository, tags repository.TagRepository, projects *project.Service) *TaxonomyHandler {
	return &TaxonomyHandler{skills: skills, tags: tags, projects: projects}
}

// ListProjectSkills 列出项目技能
// @Summary 项目技能列表
// @Tags Taxonomy
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.SkillResponse]
// @Router /v1/projects/{pid}/skills [get]
func (h *TaxonomyHandler) ListProjectSkills(c *gin.Context) {
	if _, err := h.projects.RequireOwnership(c.Request.Context(), c.Param("pid"), middleware.GetUserIDFromGin(c)); err != nil {
		dto.Fail(c, err)
		return
	}
	skills, err := h.skills.ListByProject(c.Request.Context(), c.Param("pid"))
	if err != nil {
		dto.Fail(c, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list skills"))
		return
	}
	dto.Success(c, dto.NewSkillResponses(skills))
}

// UnlinkProjectSkill 解除技能与项目的关联（技能行保留）
// @Summary 解除项目技能关联
// @Tags Taxonomy
// @Param pid path string true "项目 ID"
// @Param sid path string true "技能 ID"
// @Success 204
// @Router /v1/projects/{pid}/skills/{sid} [delete]
func (h *TaxonomyHandler) UnlinkProjectSkill(c *gin.Context) {
	if _, err := h.projects.RequireOwnership(c.Request.Context(), c.Param("pid"), middleware.GetUserIDFromGin(c)); err != nil {
		dto.Fail(c, err)
		return
	}
	if err := h.skills.UnlinkProject(c.Request.Context(), c.Param("sid"), c.Param("pid")); err != nil {
		dto.Fail(c, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to unlink skill"))
		return
	}
	dto.NoContent(c)
}

// ListContentTags 列出内容标签
// @Summary 内容标签列表
// @Tags Taxonomy
// @Produce json
// @Param cid path string true "内容 ID"
// @Success 200 {object} dto.Response[[]dto.TagResponse]
// @Router /v1/contents/{cid}/tags [get]
func (h *TaxonomyHandler) ListContentTags(c *gin.Context) {
	tags, err := h.tags.ListByContent(c.Request.Context(), c.Param("cid"))
	if err != nil {
		dto.Fail(c, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list tags"))
		return
	}
	dto.Success(c, dto.NewTagResponses(tags))
}

// UnlinkContentTag 解除标签与内容的关联（标签行保留）
// @Summary 解除内容标签关联
// @Tags Taxonomy
// @Param cid path string true "内容 ID"
// @Param tid path string true "标签 ID"
// @Success 204
// @Router /v1/contents/{cid}/tags/{tid} [delete]
func (h *TaxonomyHandler) UnlinkContentTag(c *gin.Context) {
	if err := h.tags.UnlinkContent(c.Request.Context(), c.Param("tid"), c.Param("cid")); err != nil {
		dto.Fail(c, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to unlink tag"))
		return
	}
	dto.NoContent(c)
}
