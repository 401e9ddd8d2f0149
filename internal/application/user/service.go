// Package user 实现用户资料的应用服务。
package user

import (
	"context"
	"time"

	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	apperrors "foligo-api/pkg/errors"
)

// Service 用户应用服务
type Service struct {
	users repository.UserRepository
}

// NewService 创建用户服务
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// Get 读取用户资料
func (s *Service) Get(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load user")
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile 更新昵称、头像和设置
func (s *Service) UpdateProfile(ctx context.Context, userID, name, avatarURL string, settings *entity.UserSettings) (*entity.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		u.Name = name
	}
	if avatarURL != "" {
		u.AvatarURL = avatarURL
	}
	if settings != nil {
		u.Settings = settings
	}
	u.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, u); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update user")
	}
	return u, nil
}
