// Package content 实现内容条目的应用服务：
// 创建/编辑落库、修订快照、技能标签解析关联和后台分析任务。
package content

import (
	"context"

	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	"foligo-api/pkg/logger"
)

// EntityResolver 技能/标签解析器。
// 每个候选按 (lower(name), category-or-null) 查找，缺失时创建，
// 再做幂等关联。单条失败只记日志，批次继续。
type EntityResolver struct {
	skills repository.SkillRepository
	tags   repository.TagRepository
}

// NewEntityResolver 创建实体解析器
func NewEntityResolver(skills repository.SkillRepository, tags repository.TagRepository) *EntityResolver {
	return &EntityResolver{skills: skills, tags: tags}
}

// ResolveSkills 解析技能并关联到项目和内容，返回成功解析的技能
func (r *EntityResolver) ResolveSkills(ctx context.Context, candidates []entity.NameCategory, projectID, contentID string) []*entity.Skill {
	resolved := make([]*entity.Skill, 0, len(candidates))
	for _, candidate := range candidates {
		nc := candidate.Normalize()
		if nc.Name == "" {
			continue
		}

		skill, err := r.resolveSkill(ctx, nc)
		if err != nil {
			logger.Warn(ctx, "entity resolver: resolve skill failed", "name", nc.Name, "error", err.Error())
			continue
		}

		if projectID != "" {
			if err := r.skills.LinkProject(ctx, skill.ID, projectID); err != nil {
				logger.Warn(ctx, "entity resolver: link skill to project failed",
					"skill_id", skill.ID, "project_id", projectID, "error", err.Error())
			}
		}
		if contentID != "" {
			if err := r.skills.LinkContent(ctx, skill.ID, contentID); err != nil {
				logger.Warn(ctx, "entity resolver: link skill to content failed",
					"skill_id", skill.ID, "content_id", contentID, "error", err.Error())
			}
		}
		resolved = append(resolved, skill)
	}
	return resolved
}

// ResolveTags 解析标签并关联到内容，返回成功解析的标签
func (r *EntityResolver) ResolveTags(ctx context.Context, candidates []entity.NameCategory, contentID string) []*entity.ContentTag {
	resolved := make([]*entity.ContentTag, 0, len(candidates))
	for _, candidate := range candidates {
		nc := candidate.Normalize()
		if nc.Name == "" {
			continue
		}

		tag, err := r.resolveTag(ctx, nc)
		if err != nil {
			logger.Warn(ctx, "entity resolver: resolve tag failed", "name", nc.Name, "error", err.Error())
			continue
		}

		if contentID != "" {
			if err := r.tags.LinkContent(ctx, tag.ID, contentID); err != nil {
				logger.Warn(ctx, "entity resolver: link tag to content failed",
					"tag_id", tag.ID, "content_id", contentID, "error", err.Error())
			}
		}
		resolved = append(resolved, tag)
	}
	return resolved
}

// resolveSkill 查找或创建技能；Create 依赖唯一索引，冲突时回读已存在行
func (r *EntityResolver) resolveSkill(ctx context.Context, nc entity.NameCategory) (*entity.Skill, error) {
	existing, err := r.skills.FindByNameAndCategory(ctx, nc.Name, nc.Category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return r.skills.Create(ctx, entity.NewSkill(nc.Name, nc.Category))
}

func (r *EntityResolver) resolveTag(ctx context.Context, nc entity.NameCategory) (*entity.ContentTag, error) {
	existing, err := r.tags.FindByNameAndCategory(ctx, nc.Name, nc.Category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return r.tags.Create(ctx, entity.NewContentTag(nc.Name, nc.Category))
}
