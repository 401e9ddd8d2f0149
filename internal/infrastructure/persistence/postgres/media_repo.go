// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"foligo-api/internal/domain/entity"
)

// MediaRepository 媒体仓储实现
type MediaRepository struct {
	client *Client
}

// NewMediaRepository 创建媒体仓储
func NewMediaRepository(client *Client) *MediaRepository {
	return &MediaRepository{client: client}
}

// Create 创建媒体记录
func (r *MediaRepository) Create(ctx context.Context, media *entity.Media) error {
	ctx, span := tracer.Start(ctx, "postgres.MediaRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(media).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create media: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取媒体记录
func (r *MediaRepository) GetByID(ctx context.Context, id string) (*entity.Media, error) {
	ctx, span := tracer.Start(ctx, "postgres.MediaRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var media entity.Media
	if err := db.First(&media, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return &media, nil
}

// Delete 删除媒体记录
func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.MediaRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Media{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}

// ListByProject 获取项目的媒体列表
func (r *MediaRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Media, error) {
	ctx, span := tracer.Start(ctx, "postgres.MediaRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var items []*entity.Media
	if err := db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return items, nil
}
