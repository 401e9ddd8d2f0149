// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"foligo-api/internal/domain/entity"
)

// SkillRepository 技能仓储实现
// 唯一性由 (lower(name), COALESCE(category, '')) 唯一索引保证；
// 并发创建冲突时回读已存在行。
type SkillRepository struct {
	client *Client
}

// NewSkillRepository 创建技能仓储
func NewSkillRepository(client *Client) *SkillRepository {
	return &SkillRepository{client: client}
}

// Create 创建技能（唯一冲突时返回已存在行）
func (r *SkillRepository) Create(ctx context.Context, skill *entity.Skill) (*entity.Skill, error) {
	ctx, span := tracer.Start(ctx, "postgres.SkillRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(skill).Error; err != nil {
		if isUniqueViolation(err) {
			return r.FindByNameAndCategory(ctx, skill.Name, skill.Category)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return skill, nil
}

// GetByID 根据 ID 获取技能
func (r *SkillRepository) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	ctx, span := tracer.Start(ctx, "postgres.SkillRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var skill entity.Skill
	if err := db.First(&skill, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return &skill, nil
}

// FindByNameAndCategory 按名称和分类查找（名称大小写不敏感）
func (r *SkillRepository) FindByNameAndCategory(ctx context.Context, name string, category *string) (*entity.Skill, error) {
	ctx, span := tracer.Start(ctx, "postgres.SkillRepository.FindByNameAndCategory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Where("LOWER(name) = LOWER(?)", name)
	if category == nil {
		query = query.Where("category IS NULL")
	} else {
		query = query.Where("category = ?", *category)
	}

	var skill entity.Skill
	if err := query.First(&skill).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find skill: %w", err)
	}
	return &skill, nil
}

// ListByProject 获取项目关联的技能
func (r *SkillRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Skill, error) {
	ctx, span := tracer.Start(ctx, "postgres.SkillRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var skills []*entity.Skill
	if err := db.Raw(`
		SELECT s.* FROM skills s
		JOIN project_skills ps ON ps.skill_id = s.id
		WHERE ps.project_id = ?
		ORDER BY s.category NULLS LAST, s.name`, projectID).
		Scan(&skills).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list skills by project: %w", err)
	}
	return skills, nil
}

// LinkProject 将技能关联到项目（幂等）
func (r *SkillRepository) LinkProject(ctx context.Context, skillID, projectID string) error {
	ctx, span := tracer.Start(ctx, "postgres.SkillRepository.LinkProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Exec(`
		INSERT INTO project_skills (project_id, skill_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING`, projectID, skillID).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to link skill to project: %w", err)
	}
	return nil
}

// LinkContent 将技能关联到内容（幂等）
func (r *SkillRepository) LinkContent(ctx context.Context, skillID, contentID string) error {
	ctx, span := tracer.Start(ctx, "postgres.SkillRepository.LinkContent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Exec(`
		INSERT INTO content_skills (content_id, skill_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING`, contentID, skillID).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to link skill to content: %w", err)
	}
	return nil
}

// UnlinkProject 解除技能与项目的关联
func (r *SkillRepository) UnlinkProject(ctx context.Context, skillID, projectID string) error {
	ctx, span := tracer.Start(ctx, "postgres.SkillRepository.UnlinkProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Exec(`
		DELETE FROM project_skills
		WHERE project_id = ? AND skill_id = ?`, projectID, skillID).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to unlink skill from project: %w", err)
	}
	return nil
}
