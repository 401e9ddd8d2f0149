// Package project 实现作品集项目的应用服务。
package project

import (
	"context"
	"encoding/json"
	"time"

	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/infrastructure/persistence/redis"
	apperrors "foligo-api/pkg/errors"
	"foligo-api/pkg/logger"
)

const projectCacheTTL = 10 * time.Minute

// Service 项目应用服务
type Service struct {
	projects repository.ProjectRepository
	cache    *redis.Cache
}

// NewService 创建项目服务
func NewService(projects repository.ProjectRepository, cache *redis.Cache) *Service {
	return &Service{projects: projects, cache: cache}
}

// Create 创建项目；子域名归一化后校验格式，占用冲突上抛
func (s *Service) Create(ctx context.Context, ownerID, name, subdomain string) (*entity.Project, error) {
	normalized := entity.NormalizeSubdomain(subdomain)
	if !entity.IsValidSubdomain(normalized) {
		return nil, apperrors.ErrInvalidParam.WithDetail("invalid subdomain: " + subdomain)
	}

	// 先查一次给出友好错误；真正的唯一性由数据库唯一索引保证
	taken, err := s.projects.ExistsBySubdomain(ctx, normalized)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to check subdomain")
	}
	if taken {
		return nil, apperrors.ErrSubdomainTaken
	}

	p := entity.NewProject(ownerID, name, normalized)
	if err := s.projects.Create(ctx, p); err != nil {
		if appErr := apperrors.AsAppError(err); appErr.Code == apperrors.CodeSubdomainTaken {
			return nil, appErr
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create project")
	}

	s.invalidate(ctx, p)
	return p, nil
}

// Get 读取项目（穿透缓存）
func (s *Service) Get(ctx context.Context, projectID string) (*entity.Project, error) {
	if s.cache == nil {
		return s.getOrNotFound(ctx, projectID)
	}

	data, err := s.cache.GetOrLoadSafe(ctx, redis.KeyProject(projectID), projectCacheTTL, func() (interface{}, error) {
		return s.getOrNotFound(ctx, projectID)
	})
	if err != nil {
		return nil, err
	}

	var p entity.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to decode cached project")
	}
	return &p, nil
}

// GetBySubdomain 站点渲染入口：按子域名取项目
func (s *Service) GetBySubdomain(ctx context.Context, subdomain string) (*entity.Project, error) {
	p, err := s.projects.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load project")
	}
	if p == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return p, nil
}

// List 列出用户的项目
func (s *Service) List(ctx context.Context, ownerID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	result, err := s.projects.ListByOwner(ctx, ownerID, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list projects")
	}
	return result, nil
}

// Update 更新项目；子域名变化时重新校验
func (s *Service) Update(ctx context.Context, p *entity.Project) (*entity.Project, error) {
	current, err := s.getOrNotFound(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	normalized := entity.NormalizeSubdomain(p.Subdomain)
	if normalized != current.Subdomain {
		if !entity.IsValidSubdomain(normalized) {
			return nil, apperrors.ErrInvalidParam.WithDetail("invalid subdomain: " + p.Subdomain)
		}
		taken, err := s.projects.ExistsBySubdomain(ctx, normalized)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to check subdomain")
		}
		if taken {
			return nil, apperrors.ErrSubdomainTaken
		}
	}
	p.Subdomain = normalized
	p.OwnerID = current.OwnerID
	p.UpdatedAt = time.Now()

	if err := s.projects.Update(ctx, p); err != nil {
		if appErr := apperrors.AsAppError(err); appErr.Code == apperrors.CodeSubdomainTaken {
			return nil, appErr
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update project")
	}
	s.invalidate(ctx, p)
	return p, nil
}

// Delete 删除项目
func (s *Service) Delete(ctx context.Context, projectID string) error {
	current, err := s.getOrNotFound(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete project")
	}
	s.invalidate(ctx, current)
	return nil
}

// RequireOwnership 校验项目归属；非属主返回 403
func (s *Service) RequireOwnership(ctx context.Context, projectID, userID string) (*entity.Project, error) {
	p, err := s.getOrNotFound(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != userID {
		return nil, apperrors.ErrForbidden.WithDetail("project belongs to another user")
	}
	return p, nil
}

func (s *Service) invalidate(ctx context.Context, p *entity.Project) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProject(ctx, p.ID, p.OwnerID); err != nil {
		logger.Warn(ctx, "project cache invalidation failed", "project_id", p.ID, "error", err.Error())
	}
}

func (s *Service) getOrNotFound(ctx context.Context, projectID string) (*entity.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load project")
	}
	if p == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return p, nil
}
