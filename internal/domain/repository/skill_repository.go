// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"foligo-api/internal/domain/entity"
)

// SkillRepository 技能仓储接口
// FindByNameAndCategory 按 (lower(name), category) 匹配；Create 依赖唯一索引，
// 并发冲突时返回已存在行。Link* 操作幂等（ON CONFLICT DO NOTHING）。
type SkillRepository interface {
	// Create 创建技能（唯一冲突时返回已存在行）
	Create(ctx context.Context, skill *entity.Skill) (*entity.Skill, error)

	// GetByID 根据 ID 获取技能
	GetByID(ctx context.Context, id string) (*entity.Skill, error)

	// FindByNameAndCategory 按名称和分类查找（名称大小写不敏感）
	FindByNameAndCategory(ctx context.Context, name string, category *string) (*entity.Skill, error)

	// ListByProject 获取项目关联的技能
	ListByProject(ctx context.Context, projectID string) ([]*entity.Skill, error)

	// LinkProject 将技能关联到项目（幂等）
	LinkProject(ctx context.Context, skillID, projectID string) error

	// LinkContent 将技能关联到内容（幂等）
	LinkContent(ctx context.Context, skillID, contentID string) error

	// UnlinkProject 解除技能与项目的关联
	UnlinkProject(ctx context.Context, skillID, projectID string) error
}
