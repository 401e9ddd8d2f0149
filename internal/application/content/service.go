package content

import (
	"context"
	"encoding/json"
	"time"

	"foligo-api/internal/application/assistant"
	"foligo-api/internal/config"
	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/infrastructure/messaging"
	"foligo-api/internal/infrastructure/persistence/redis"
	wfmodel "foligo-api/internal/workflow/model"
	apperrors "foligo-api/pkg/errors"
	"foligo-api/pkg/logger"
)

const contentCacheTTL = 10 * time.Minute

// Service 内容应用服务。
// 内容行、技能标签关联属于不同写入，按顺序执行且不包事务：
// 内容行落库后关联失败只留下无关联的内容，不做补偿回滚。
type Service struct {
	contents repository.ContentRepository
	resolver *EntityResolver
	cache    *redis.Cache
	producer *messaging.Producer
	features config.FeaturesConfig
}

// NewService 创建内容服务
func NewService(
	contents repository.ContentRepository,
	resolver *EntityResolver,
	cache *redis.Cache,
	producer *messaging.Producer,
	cfg *config.Config,
) *Service {
	return &Service{
		contents: contents,
		resolver: resolver,
		cache:    cache,
		producer: producer,
		features: cfg.Features,
	}
}

// CreateFromGenerated 将生成结果落库为草稿内容并解析关联技能/标签
func (s *Service) CreateFromGenerated(ctx context.Context, projectID string, kind entity.ContentKind, gen *wfmodel.GeneratedContent) (*entity.Content, error) {
	if gen == nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("generated content is nil")
	}
	if !kind.IsValid() {
		return nil, apperrors.ErrInvalidParam.WithDetail("unknown content kind: " + string(kind))
	}

	c := entity.NewContent(projectID, kind, gen.Title)
	c.Excerpt = gen.Excerpt
	c.Body = gen.Body
	c.StructuredData = gen.StructuredData
	if err := s.contents.Create(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create content")
	}

	s.linkEntities(ctx, c, gen)
	s.invalidate(ctx, c)
	s.publishAnalyze(ctx, c, "created")
	return c, nil
}

// UpdateFromGenerated 用编辑结果覆盖内容，覆盖前为旧状态建立完整修订快照
func (s *Service) UpdateFromGenerated(ctx context.Context, contentID string, gen *wfmodel.GeneratedContent) (*entity.Content, error) {
	if gen == nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("generated content is nil")
	}

	current, err := s.getEditable(ctx, contentID)
	if err != nil {
		return nil, err
	}

	if err := s.snapshotRevision(ctx, current); err != nil {
		return nil, err
	}

	current.Title = gen.Title
	current.Excerpt = gen.Excerpt
	current.Body = gen.Body
	current.StructuredData = gen.StructuredData
	current.UpdatedAt = time.Now()
	if err := s.contents.Update(ctx, current); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update content")
	}

	s.linkEntities(ctx, current, gen)
	s.invalidate(ctx, current)
	s.publishAnalyze(ctx, current, "edited")
	return current, nil
}

// Update 常规字段更新（标题/正文/状态等），同样先留修订快照
func (s *Service) Update(ctx context.Context, c *entity.Content) (*entity.Content, error) {
	if c == nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("content is nil")
	}
	current, err := s.getEditable(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if err := s.snapshotRevision(ctx, current); err != nil {
		return nil, err
	}

	c.ProjectID = current.ProjectID
	c.Kind = current.Kind
	c.RevisionOf = nil
	c.RevisionNumber = current.RevisionNumber
	c.UpdatedAt = time.Now()
	if err := s.contents.Update(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update content")
	}
	s.invalidate(ctx, c)
	return c, nil
}

// Get 读取内容（穿透缓存，singleflight 防击穿）
func (s *Service) Get(ctx context.Context, contentID string) (*entity.Content, error) {
	if s.cache == nil {
		return s.getOrNotFound(ctx, contentID)
	}

	data, err := s.cache.GetOrLoadSafe(ctx, redis.KeyContent(contentID), contentCacheTTL, func() (interface{}, error) {
		return s.getOrNotFound(ctx, contentID)
	})
	if err != nil {
		return nil, err
	}

	var c entity.Content
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to decode cached content")
	}
	return &c, nil
}

// List 按条件分页列出内容（不含历史修订）
func (s *Service) List(ctx context.Context, filter *repository.ContentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Content], error) {
	result, err := s.contents.List(ctx, filter, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list contents")
	}
	return result, nil
}

// Delete 删除内容
func (s *Service) Delete(ctx context.Context, contentID string) error {
	current, err := s.getOrNotFound(ctx, contentID)
	if err != nil {
		return err
	}
	if err := s.contents.Delete(ctx, contentID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete content")
	}
	s.invalidate(ctx, current)
	return nil
}

// ListRevisions 列出内容的修订链（按修订号降序）
func (s *Service) ListRevisions(ctx context.Context, contentID string) ([]*entity.Content, error) {
	if _, err := s.getOrNotFound(ctx, contentID); err != nil {
		return nil, err
	}
	revisions, err := s.contents.ListRevisions(ctx, contentID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list revisions")
	}
	return revisions, nil
}

// RestoreRevision 把某个修订快照恢复为当前内容；恢复前同样为当前状态留快照
func (s *Service) RestoreRevision(ctx context.Context, contentID, revisionID string) (*entity.Content, error) {
	current, err := s.getEditable(ctx, contentID)
	if err != nil {
		return nil, err
	}

	revision, err := s.contents.GetByID(ctx, revisionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load revision")
	}
	if revision == nil || revision.RevisionOf == nil || *revision.RevisionOf != contentID {
		return nil, apperrors.ErrContentNotFound.WithDetail("revision does not belong to content")
	}

	if err := s.snapshotRevision(ctx, current); err != nil {
		return nil, err
	}

	current.Title = revision.Title
	current.Excerpt = revision.Excerpt
	current.Body = revision.Body
	current.StructuredData = revision.StructuredData
	current.Status = revision.Status
	current.UpdatedAt = time.Now()
	if err := s.contents.Update(ctx, current); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to restore revision")
	}
	s.invalidate(ctx, current)
	return current, nil
}

// GetPost 按 ID 取回项目内某条内容，供对话处理器折叠进历史
func (s *Service) GetPost(ctx context.Context, projectID, postID string) (*assistant.ContentPost, error) {
	c, err := s.contents.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.ProjectID != projectID || c.RevisionOf != nil {
		return nil, nil
	}
	return &assistant.ContentPost{ID: c.ID, Title: c.Title, Body: c.Body}, nil
}

// snapshotRevision 为当前状态创建完整快照修订
func (s *Service) snapshotRevision(ctx context.Context, current *entity.Content) error {
	maxRev, err := s.contents.MaxRevisionNumber(ctx, current.ID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to query revision number")
	}
	snapshot := current.Snapshot(maxRev + 1)
	if err := s.contents.Create(ctx, snapshot); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create revision snapshot")
	}
	return nil
}

// linkEntities 解析并关联生成结果携带的技能/标签（失败只记日志）
func (s *Service) linkEntities(ctx context.Context, c *entity.Content, gen *wfmodel.GeneratedContent) {
	if s.resolver == nil {
		return
	}
	s.resolver.ResolveSkills(ctx, toNameCategories(gen.Skills), c.ProjectID, c.ID)
	s.resolver.ResolveTags(ctx, toNameCategories(gen.Tags), c.ID)
}

func (s *Service) invalidate(ctx context.Context, c *entity.Content) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateContent(ctx, c.ID, c.ProjectID); err != nil {
		logger.Warn(ctx, "content cache invalidation failed", "content_id", c.ID, "error", err.Error())
	}
}

// publishAnalyze 投递后台分析任务；失败只记日志，从不影响调用方
func (s *Service) publishAnalyze(ctx context.Context, c *entity.Content, reason string) {
	if s.producer == nil || !s.features.BackgroundAnalysis.Enabled {
		return
	}
	_, err := s.producer.PublishContentAnalyze(ctx, &messaging.ContentAnalyzeMessage{
		ContentID: c.ID,
		ProjectID: c.ProjectID,
		Kind:      string(c.Kind),
		Reason:    reason,
	})
	if err != nil {
		logger.Warn(ctx, "failed to publish content analyze job", "content_id", c.ID, "error", err.Error())
	}
}

// getEditable 读取可编辑内容；修订快照本身不可再编辑
func (s *Service) getEditable(ctx context.Context, contentID string) (*entity.Content, error) {
	current, err := s.getOrNotFound(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if current.RevisionOf != nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("revision snapshots are read-only")
	}
	return current, nil
}

func (s *Service) getOrNotFound(ctx context.Context, contentID string) (*entity.Content, error) {
	c, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load content")
	}
	if c == nil {
		return nil, apperrors.ErrContentNotFound
	}
	return c, nil
}

func toNameCategories(items []wfmodel.NameCategory) []entity.NameCategory {
	out := make([]entity.NameCategory, 0, len(items))
	for _, it := range items {
		out = append(out, entity.NameCategory{Name: it.Name, Category: it.Category})
	}
	return out
}
