package dto

import (
	"time"

	"foligo-api/internal/domain/entity"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Subdomain string `json:"subdomain" binding:"required"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Name        string                  `json:"name,omitempty"`
	Subdomain   string                  `json:"subdomain,omitempty"`
	Description string                  `json:"description,omitempty"`
	Bio         string                  `json:"bio,omitempty"`
	Settings    *entity.ProjectSettings `json:"settings,omitempty"`
	Published   *bool                   `json:"published,omitempty"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID          string                  `json:"id"`
	OwnerID     string                  `json:"owner_id"`
	Name        string                  `json:"name"`
	Subdomain   string                  `json:"subdomain"`
	Description string                  `json:"description,omitempty"`
	Bio         string                  `json:"bio,omitempty"`
	Settings    *entity.ProjectSettings `json:"settings,omitempty"`
	Published   bool                    `json:"published"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// NewProjectResponse 构建项目响应
func NewProjectResponse(p *entity.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Subdomain:   p.Subdomain,
		Description: p.Description,
		Bio:         p.Bio,
		Settings:    p.Settings,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProjectResponses 批量构建项目响应
func NewProjectResponses(items []*entity.Project) []*ProjectResponse {
	out := make([]*ProjectResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewProjectResponse(p))
	}
	return out
}
