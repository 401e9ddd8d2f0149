package auth

import (
	"context"
	"strings"

	"golang.org/x/oauth2"

	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/infrastructure/sso"
	apperrors "foligo-api/pkg/errors"
	"foligo-api/pkg/logger"
	"foligo-api/pkg/utils"
)

// SSOService OIDC 单点登录应用服务。
// 授权码 + PKCE + nonce；登录会话按 state 存内存，单次消费。
type SSOService struct {
	registry *sso.Registry
	sessions sso.LoginSessionStore
	users    repository.UserRepository
	auth     *Service
}

// NewSSOService 创建 SSO 服务
func NewSSOService(registry *sso.Registry, sessions sso.LoginSessionStore, users repository.UserRepository, auth *Service) *SSOService {
	return &SSOService{registry: registry, sessions: sessions, users: users, auth: auth}
}

// Providers 返回已配置的提供商名称
func (s *SSOService) Providers() []string {
	return s.registry.Names()
}

// BeginLogin 生成授权 URL 并登记登录会话
func (s *SSOService) BeginLogin(ctx context.Context, providerName, redirectTo string) (string, error) {
	provider, err := s.registry.Get(ctx, providerName)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeSSOProviderError, "unknown sso provider")
	}

	state := oauth2.GenerateVerifier()
	nonce := oauth2.GenerateVerifier()
	codeVerifier := oauth2.GenerateVerifier()

	s.sessions.Put(state, sso.LoginSession{
		Provider:     providerName,
		CodeVerifier: codeVerifier,
		Nonce:        nonce,
		RedirectTo:   redirectTo,
	})
	return provider.AuthURL(state, nonce, codeVerifier), nil
}

// CompleteLogin 处理回调：校验 state，交换令牌，找到或创建用户，颁发应用令牌
func (s *SSOService) CompleteLogin(ctx context.Context, state, code string) (*entity.User, *utils.TokenPair, string, error) {
	session, ok := s.sessions.Get(state)
	if !ok {
		return nil, nil, "", apperrors.New(apperrors.CodeSSOStateInvalid, "unknown or expired login state")
	}

	provider, err := s.registry.Get(ctx, session.Provider)
	if err != nil {
		return nil, nil, "", apperrors.Wrap(err, apperrors.CodeSSOProviderError, "sso provider unavailable")
	}

	claims, err := provider.Exchange(ctx, code, session.CodeVerifier, session.Nonce)
	if err != nil {
		return nil, nil, "", apperrors.Wrap(err, apperrors.CodeSSOExchangeError, "sso code exchange failed")
	}

	user, err := s.findOrCreateUser(ctx, session.Provider, claims)
	if err != nil {
		return nil, nil, "", err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn(ctx, "failed to update last login", "user_id", user.ID, "error", err.Error())
	}

	pair, err := s.auth.issueTokens(user)
	if err != nil {
		return nil, nil, "", err
	}
	return user, pair, session.RedirectTo, nil
}

// findOrCreateUser 按 (provider, subject) 匹配身份；首次登录时按邮箱并入或新建用户
func (s *SSOService) findOrCreateUser(ctx context.Context, providerName string, claims *sso.Claims) (*entity.User, error) {
	identity, err := s.users.GetIdentity(ctx, providerName, claims.Subject)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load identity")
	}
	if identity != nil {
		user, err := s.users.GetByID(ctx, identity.UserID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load user")
		}
		if user == nil {
			return nil, apperrors.ErrUserNotFound
		}
		return user, nil
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return nil, apperrors.New(apperrors.CodeSSOExchangeError, "sso provider returned no email")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load user")
	}
	if user == nil {
		name := claims.Name
		if name == "" {
			name = email
		}
		user = entity.NewUser(email, name)
		user.AvatarURL = claims.Picture
		if err := s.users.Create(ctx, user); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create user")
		}
		logger.Info(ctx, "user created via sso", "user_id", user.ID, "provider", providerName)
	}

	if err := s.users.CreateIdentity(ctx, entity.NewIdentity(user.ID, providerName, claims.Subject, email)); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to bind identity")
	}
	return user, nil
}
