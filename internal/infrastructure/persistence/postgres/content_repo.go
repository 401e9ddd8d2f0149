// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
)

// ContentRepository 内容仓储实现
type ContentRepository struct {
	client *Client
}

// NewContentRepository 创建内容仓储
func NewContentRepository(client *Client) *ContentRepository {
	return &ContentRepository{client: client}
}

// Create 创建内容
func (r *ContentRepository) Create(ctx context.Context, content *entity.Content) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(content).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取内容
func (r *ContentRepository) GetByID(ctx context.Context, id string) (*entity.Content, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var content entity.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &content, nil
}

// Update 更新内容
func (r *ContentRepository) Update(ctx context.Context, content *entity.Content) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(content).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update content: %w", err)
	}
	return nil
}

// Delete 删除内容
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Content{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}

// List 获取内容列表（排除历史修订）
func (r *ContentRepository) List(ctx context.Context, filter *repository.ContentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Content], error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.Content{}).Where("revision_of IS NULL")
	if filter != nil {
		if filter.ProjectID != "" {
			query = query.Where("project_id = ?", filter.ProjectID)
		}
		if filter.Kind != "" {
			query = query.Where("kind = ?", filter.Kind)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count contents: %w", err)
	}

	var contents []*entity.Content
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&contents).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}

	return repository.NewPagedResult(contents, total, pagination), nil
}

// ListRecentByKind 按类型获取最近内容
func (r *ContentRepository) ListRecentByKind(ctx context.Context, projectID string, kind entity.ContentKind, limit int) ([]*entity.Content, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.ListRecentByKind")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var contents []*entity.Content
	if err := db.Where("project_id = ? AND kind = ? AND revision_of IS NULL", projectID, kind).
		Order("updated_at DESC").
		Limit(limit).
		Find(&contents).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list recent contents: %w", err)
	}
	return contents, nil
}

// ListRevisions 获取某内容的修订链
func (r *ContentRepository) ListRevisions(ctx context.Context, contentID string) ([]*entity.Content, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.ListRevisions")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var revisions []*entity.Content
	if err := db.Where("revision_of = ?", contentID).
		Order("revision_number DESC").
		Find(&revisions).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return revisions, nil
}

// MaxRevisionNumber 获取某内容当前最大修订号
func (r *ContentRepository) MaxRevisionNumber(ctx context.Context, contentID string) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.MaxRevisionNumber")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var max sql.NullInt64
	if err := db.Model(&entity.Content{}).
		Where("revision_of = ?", contentID).
		Select("MAX(revision_number)").
		Scan(&max).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get max revision number: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}
