// Package media 实现媒体文件的应用服务：元数据落库 + 对象存储读写。
package media

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/infrastructure/storage"
	apperrors "foligo-api/pkg/errors"
	"foligo-api/pkg/logger"
)

// maxUploadSize 单个上传文件的大小上限
const maxUploadSize = 20 << 20 // 20 MiB

// Service 媒体应用服务
type Service struct {
	media   repository.MediaRepository
	storage *storage.Client
}

// NewService 创建媒体服务
func NewService(media repository.MediaRepository, storageClient *storage.Client) *Service {
	return &Service{media: media, storage: storageClient}
}

// Upload 上传文件：先写对象存储，再落元数据
func (s *Service) Upload(ctx context.Context, projectID, fileName, mimeType string, data []byte) (*entity.Media, error) {
	if len(data) == 0 {
		return nil, apperrors.ErrInvalidParam.WithDetail("empty file")
	}
	if len(data) > maxUploadSize {
		return nil, apperrors.ErrInvalidParam.WithDetail("file too large")
	}

	objectName := fmt.Sprintf("%s/%s%s", projectID, uuid.NewString(), path.Ext(fileName))
	if err := s.storage.Upload(ctx, objectName, data, mimeType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageError, "failed to upload file")
	}

	m := entity.NewMedia(projectID, objectName, fileName, mimeType, int64(len(data)))
	if err := s.media.Create(ctx, m); err != nil {
		// 元数据落库失败时清理已写入的对象
		if rmErr := s.storage.Remove(ctx, objectName); rmErr != nil {
			logger.Warn(ctx, "failed to clean up orphan object", "object", objectName, "error", rmErr.Error())
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to save media record")
	}
	return m, nil
}

// List 列出项目的媒体
func (s *Service) List(ctx context.Context, projectID string) ([]*entity.Media, error) {
	items, err := s.media.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list media")
	}
	return items, nil
}

// Open 打开媒体文件流；文件经 API 代理而不是暴露存储 URL
func (s *Service) Open(ctx context.Context, mediaID string) (*entity.Media, io.ReadCloser, error) {
	m, err := s.getOrNotFound(ctx, mediaID)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.storage.Get(ctx, m.ObjectName)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeStorageError, "failed to open file")
	}
	return m, reader, nil
}

// Delete 删除媒体：先删元数据，再尽力删对象
func (s *Service) Delete(ctx context.Context, mediaID string) error {
	m, err := s.getOrNotFound(ctx, mediaID)
	if err != nil {
		return err
	}
	if err := s.media.Delete(ctx, mediaID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete media record")
	}
	if err := s.storage.Remove(ctx, m.ObjectName); err != nil {
		logger.Warn(ctx, "failed to remove stored object", "object", m.ObjectName, "error", err.Error())
	}
	return nil
}

func (s *Service) getOrNotFound(ctx context.Context, mediaID string) (*entity.Media, error) {
	m, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load media")
	}
	if m == nil {
		return nil, apperrors.ErrMediaNotFound
	}
	return m, nil
}
