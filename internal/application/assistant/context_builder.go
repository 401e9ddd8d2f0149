// Package assistant 实现作品集内容助手的应用层管线：
// 上下文构建、类型分类、对话轮次处理和最终生成。
package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	wfnode "foligo-api/internal/workflow/node"
	"foligo-api/pkg/logger"
)

const (
	contextRecentItemsPerKind = 10
	contextExcerptMaxRunes    = 100
)

// ContextBuilder 汇总作者画像：用户资料、项目简介、各类型最近内容、
// 按分类分组的技能和去重的标签分类。
// 任何一次查询失败只记日志并跳过对应段落，永远返回已收集到的部分。
type ContextBuilder struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	contents repository.ContentRepository
	skills   repository.SkillRepository
	tags     repository.TagRepository
}

// NewContextBuilder 创建上下文构建器
func NewContextBuilder(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	contents repository.ContentRepository,
	skills repository.SkillRepository,
	tags repository.TagRepository,
) *ContextBuilder {
	return &ContextBuilder{
		users:    users,
		projects: projects,
		contents: contents,
		skills:   skills,
		tags:     tags,
	}
}

// Build 生成有界的作者画像文本块
func (b *ContextBuilder) Build(ctx context.Context, userID, projectID string) string {
	var sb strings.Builder

	b.writeAuthorSection(ctx, &sb, userID)
	b.writeProjectSection(ctx, &sb, projectID)
	b.writeContentSections(ctx, &sb, projectID)
	b.writeSkillSection(ctx, &sb, projectID)
	b.writeTagSection(ctx, &sb, projectID)

	return strings.TrimSpace(sb.String())
}

func (b *ContextBuilder) writeAuthorSection(ctx context.Context, sb *strings.Builder, userID string) {
	user, err := b.users.GetByID(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "context builder: load user failed", "user_id", userID, "error", err.Error())
		return
	}
	if user == nil {
		return
	}
	sb.WriteString("## Author\n")
	fmt.Fprintf(sb, "Name: %s\n", user.Name)
	if user.Email != "" {
		fmt.Fprintf(sb, "Email: %s\n", user.Email)
	}
	sb.WriteString("\n")
}

func (b *ContextBuilder) writeProjectSection(ctx context.Context, sb *strings.Builder, projectID string) {
	project, err := b.projects.GetByID(ctx, projectID)
	if err != nil {
		logger.Warn(ctx, "context builder: load project failed", "project_id", projectID, "error", err.Error())
		return
	}
	if project == nil {
		return
	}
	sb.WriteString("## Portfolio\n")
	fmt.Fprintf(sb, "Name: %s\n", project.Name)
	if project.Description != "" {
		fmt.Fprintf(sb, "Description: %s\n", project.Description)
	}
	if project.Bio != "" {
		fmt.Fprintf(sb, "Bio: %s\n", project.Bio)
	}
	sb.WriteString("\n")
}

func (b *ContextBuilder) writeContentSections(ctx context.Context, sb *strings.Builder, projectID string) {
	for _, kind := range []entity.ContentKind{
		entity.ContentKindProject,
		entity.ContentKindExperience,
		entity.ContentKindBlog,
		entity.ContentKindSkill,
	} {
		items, err := b.contents.ListRecentByKind(ctx, projectID, kind, contextRecentItemsPerKind)
		if err != nil {
			logger.Warn(ctx, "context builder: list contents failed",
				"project_id", projectID, "kind", string(kind), "error", err.Error())
			continue
		}
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(sb, "## Existing %s posts\n", strings.ToLower(string(kind)))
		for _, item := range items {
			excerpt := wfnode.TruncateByRunes(wfnode.FlattenNewlines(item.Excerpt), contextExcerptMaxRunes)
			if excerpt == "" {
				fmt.Fprintf(sb, "- [%s] %s\n", item.ID, item.Title)
				continue
			}
			fmt.Fprintf(sb, "- [%s] %s — %s\n", item.ID, item.Title, excerpt)
		}
		sb.WriteString("\n")
	}
}

func (b *ContextBuilder) writeSkillSection(ctx context.Context, sb *strings.Builder, projectID string) {
	skills, err := b.skills.ListByProject(ctx, projectID)
	if err != nil {
		logger.Warn(ctx, "context builder: list skills failed", "project_id", projectID, "error", err.Error())
		return
	}
	if len(skills) == 0 {
		return
	}

	grouped := make(map[string][]string)
	for _, s := range skills {
		category := "Uncategorized"
		if s.Category != nil && *s.Category != "" {
			category = *s.Category
		}
		grouped[category] = append(grouped[category], s.Name)
	}
	categories := make([]string, 0, len(grouped))
	for c := range grouped {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	sb.WriteString("## Skills\n")
	for _, c := range categories {
		fmt.Fprintf(sb, "%s: %s\n", c, strings.Join(grouped[c], ", "))
	}
	sb.WriteString("\n")
}

func (b *ContextBuilder) writeTagSection(ctx context.Context, sb *strings.Builder, projectID string) {
	categories, err := b.tags.ListCategoriesByProject(ctx, projectID)
	if err != nil {
		logger.Warn(ctx, "context builder: list tag categories failed", "project_id", projectID, "error", err.Error())
		return
	}
	if len(categories) == 0 {
		return
	}
	sb.WriteString("## Tag categories\n")
	sb.WriteString(strings.Join(categories, ", "))
	sb.WriteString("\n\n")
}
