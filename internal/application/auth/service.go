// Package auth 实现注册、登录、令牌刷新和 OIDC 单点登录。
package auth

import (
	"context"
	"strings"

	"foligo-api/internal/config"
	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	apperrors "foligo-api/pkg/errors"
	"foligo-api/pkg/logger"
	"foligo-api/pkg/utils"
)

// Service 认证应用服务
type Service struct {
	users repository.UserRepository
	jwt   *utils.JWTManager
	cfg   config.JWTConfig
}

// NewService 创建认证服务
func NewService(users repository.UserRepository, cfg *config.Config) *Service {
	return &Service{
		users: users,
		jwt:   utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer),
		cfg:   cfg.Security.JWT,
	}
}

// Register 注册新用户并颁发令牌
func (s *Service) Register(ctx context.Context, email, password, name string) (*entity.User, *utils.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, apperrors.ErrInvalidParam.WithDetail("email and password are required")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to check email")
	}
	if exists {
		return nil, nil, apperrors.ErrConflict.WithDetail("email already registered")
	}

	user := entity.NewUser(email, name)
	if err := user.SetPassword(password); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to hash password")
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create user")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, pair, nil
}

// Login 校验密码并颁发令牌
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, *utils.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load user")
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, nil, apperrors.ErrUnauthorized.WithDetail("invalid email or password")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn(ctx, "failed to update last login", "user_id", user.ID, "error", err.Error())
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh 用 RefreshToken 换新令牌对
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := s.jwt.ParseToken(refreshToken)
	if err != nil {
		if err == utils.ErrExpiredToken {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.Type != "refresh" {
		return nil, apperrors.ErrTokenInvalid.WithDetail("not a refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load user")
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *entity.User) (*utils.TokenPair, error) {
	pair, err := s.jwt.GenerateTokenPair(user.ID, user.Email, s.cfg.Expiration, s.cfg.RefreshExpiration)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to issue tokens")
	}
	return pair, nil
}
