// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"foligo-api/internal/domain/entity"
)

// TagRepository 内容标签仓储接口
type TagRepository interface {
	// Create 创建标签（唯一冲突时返回已存在行）
	Create(ctx context.Context, tag *entity.ContentTag) (*entity.ContentTag, error)

	// GetByID 根据 ID 获取标签
	GetByID(ctx context.Context, id string) (*entity.ContentTag, error)

	// FindByNameAndCategory 按名称和分类查找（名称大小写不敏感）
	FindByNameAndCategory(ctx context.Context, name string, category *string) (*entity.ContentTag, error)

	// ListByContent 获取内容关联的标签
	ListByContent(ctx context.Context, contentID string) ([]*entity.ContentTag, error)

	// ListCategoriesByProject 获取项目下内容标签的去重分类列表
	ListCategoriesByProject(ctx context.Context, projectID string) ([]string, error)

	// LinkContent 将标签关联到内容（幂等）
	LinkContent(ctx context.Context, tagID, contentID string) error

	// UnlinkContent 解除标签与内容的关联
	UnlinkContent(ctx context.Context, tagID, contentID string) error
}
