// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"foligo-api/internal/domain/entity"
)

// ContentFilter 内容过滤条件
type ContentFilter struct {
	ProjectID string
	Kind      entity.ContentKind
	Status    entity.ContentStatus
}

// ContentRepository 内容仓储接口
type ContentRepository interface {
	// Create 创建内容
	Create(ctx context.Context, content *entity.Content) error

	// GetByID 根据 ID 获取内容
	GetByID(ctx context.Context, id string) (*entity.Content, error)

	// Update 更新内容
	Update(ctx context.Context, content *entity.Content) error

	// Delete 删除内容
	Delete(ctx context.Context, id string) error

	// List 获取内容列表
	List(ctx context.Context, filter *ContentFilter, pagination Pagination) (*PagedResult[*entity.Content], error)

	// ListRecentByKind 按类型获取最近内容（上下文构建用，排除历史修订）
	ListRecentByKind(ctx context.Context, projectID string, kind entity.ContentKind, limit int) ([]*entity.Content, error)

	// ListRevisions 获取某内容的修订链（按修订号降序）
	ListRevisions(ctx context.Context, contentID string) ([]*entity.Content, error)

	// MaxRevisionNumber 获取某内容当前最大修订号
	MaxRevisionNumber(ctx context.Context, contentID string) (int, error)
}
