package dto

import (
	"time"

	"foligo-api/internal/domain/entity"
)

// UserResponse 用户资料响应
type UserResponse struct {
	ID          string               `json:"id"`
	Email       string               `json:"email"`
	Name        string               `json:"name"`
	AvatarURL   string               `json:"avatar_url,omitempty"`
	Settings    *entity.UserSettings `json:"settings,omitempty"`
	LastLoginAt *time.Time           `json:"last_login_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// NewUserResponse 构建用户响应
func NewUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		Settings:    u.Settings,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// UpdateUserRequest 更新用户资料请求
type UpdateUserRequest struct {
	Name      string               `json:"name,omitempty"`
	AvatarURL string               `json:"avatar_url,omitempty"`
	Settings  *entity.UserSettings `json:"settings,omitempty"`
}
