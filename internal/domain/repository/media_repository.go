// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"foligo-api/internal/domain/entity"
)

// MediaRepository 媒体仓储接口
type MediaRepository interface {
	// Create 创建媒体记录
	Create(ctx context.Context, media *entity.Media) error

	// GetByID 根据 ID 获取媒体记录
	GetByID(ctx context.Context, id string) (*entity.Media, error)

	// Delete 删除媒体记录
	Delete(ctx context.Context, id string) error

	// ListByProject 获取项目的媒体列表
	ListByProject(ctx context.Context, projectID string) ([]*entity.Media, error)
}
