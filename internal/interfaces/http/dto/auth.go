package dto

import (
	"foligo-api/internal/domain/entity"
	"foligo-api/pkg/utils"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

// NewAuthResponse 构建认证响应
func NewAuthResponse(user *entity.User, pair *utils.TokenPair) *AuthResponse {
	resp := &AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if user != nil {
		resp.User = NewUserResponse(user)
	}
	return resp
}

// SSOProvidersResponse 可用 SSO 提供商列表
type SSOProvidersResponse struct {
	Providers []string `json:"providers"`
}

// SSOLoginResponse SSO 登录跳转响应
type SSOLoginResponse struct {
	AuthURL string `json:"auth_url"`
}

// SSOCallbackResponse SSO 回调响应
type SSOCallbackResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	RedirectTo   string        `json:"redirect_to,omitempty"`
}
