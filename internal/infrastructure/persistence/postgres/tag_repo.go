// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"foligo-api/internal/domain/entity"
)

// TagRepository 内容标签仓储实现
type TagRepository struct {
	client *Client
}

// NewTagRepository 创建标签仓储
func NewTagRepository(client *Client) *TagRepository {
	return &TagRepository{client: client}
}

// Create 创建标签（唯一冲突时返回已存在行）
func (r *TagRepository) Create(ctx context.Context, tag *entity.ContentTag) (*entity.ContentTag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(tag).Error; err != nil {
		if isUniqueViolation(err) {
			return r.FindByNameAndCategory(ctx, tag.Name, tag.Category)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// GetByID 根据 ID 获取标签
func (r *TagRepository) GetByID(ctx context.Context, id string) (*entity.ContentTag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tag entity.ContentTag
	if err := db.First(&tag, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// FindByNameAndCategory 按名称和分类查找（名称大小写不敏感）
func (r *TagRepository) FindByNameAndCategory(ctx context.Context, name string, category *string) (*entity.ContentTag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.FindByNameAndCategory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Where("LOWER(name) = LOWER(?)", name)
	if category == nil {
		query = query.Where("category IS NULL")
	} else {
		query = query.Where("category = ?", *category)
	}

	var tag entity.ContentTag
	if err := query.First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &tag, nil
}

// ListByContent 获取内容关联的标签
func (r *TagRepository) ListByContent(ctx context.Context, contentID string) ([]*entity.ContentTag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.ListByContent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tags []*entity.ContentTag
	if err := db.Raw(`
		SELECT t.* FROM content_tags t
		JOIN content_tag_links l ON l.tag_id = t.id
		WHERE l.content_id = ?
		ORDER BY t.category NULLS LAST, t.name`, contentID).
		Scan(&tags).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list tags by content: %w", err)
	}
	return tags, nil
}

// ListCategoriesByProject 获取项目下内容标签的去重分类列表
func (r *TagRepository) ListCategoriesByProject(ctx context.Context, projectID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.ListCategoriesByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var categories []string
	if err := db.Raw(`
		SELECT DISTINCT t.category FROM content_tags t
		JOIN content_tag_links l ON l.tag_id = t.id
		JOIN contents c ON c.id = l.content_id
		WHERE c.project_id = ? AND t.category IS NOT NULL
		ORDER BY t.category`, projectID).
		Scan(&categories).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list tag categories: %w", err)
	}
	return categories, nil
}

// LinkContent 将标签关联到内容（幂等）
func (r *TagRepository) LinkContent(ctx context.Context, tagID, contentID string) error {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.LinkContent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Exec(`
		INSERT INTO content_tag_links (content_id, tag_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING`, contentID, tagID).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to link tag to content: %w", err)
	}
	return nil
}

// UnlinkContent 解除标签与内容的关联
func (r *TagRepository) UnlinkContent(ctx context.Context, tagID, contentID string) error {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.UnlinkContent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Exec(`
		DELETE FROM content_tag_links
		WHERE content_id = ? AND tag_id = ?`, contentID, tagID).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to unlink tag from content: %w", err)
	}
	return nil
}
