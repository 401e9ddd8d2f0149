package dto

import (
	"encoding/json"
	"time"

	"foligo-api/internal/domain/entity"
)

// UpdateContentRequest 更新内容请求（常规字段编辑）
type UpdateContentRequest struct {
	Title          string          `json:"title,omitempty"`
	Excerpt        string          `json:"excerpt,omitempty"`
	Body           string          `json:"body,omitempty"`
	StructuredData json.RawMessage `json:"structured_data,omitempty"`
	Status         string          `json:"status,omitempty"`
}

// ContentResponse 内容响应
type ContentResponse struct {
	ID             string          `json:"id"`
	ProjectID      string          `json:"project_id"`
	Kind           string          `json:"kind"`
	Title          string          `json:"title"`
	Excerpt        string          `json:"excerpt,omitempty"`
	Body           string          `json:"body,omitempty"`
	StructuredData json.RawMessage `json:"structured_data,omitempty"`
	Status         string          `json:"status"`
	RevisionOf     *string         `json:"revision_of,omitempty"`
	RevisionNumber int             `json:"revision_number"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewContentResponse 构建内容响应
func NewContentResponse(c *entity.Content) *ContentResponse {
	return &ContentResponse{
		ID:             c.ID,
		ProjectID:      c.ProjectID,
		Kind:           string(c.Kind),
		Title:          c.Title,
		Excerpt:        c.Excerpt,
		Body:           c.Body,
		StructuredData: c.StructuredData,
		Status:         string(c.Status),
		RevisionOf:     c.RevisionOf,
		RevisionNumber: c.RevisionNumber,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// NewContentResponses 批量构建内容响应
func NewContentResponses(items []*entity.Content) []*ContentResponse {
	out := make([]*ContentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewContentResponse(c))
	}
	return out
}

// SkillResponse 技能响应
type SkillResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category *string `json:"category,omitempty"`
}

// NewSkillResponses 批量构建技能响应
func NewSkillResponses(items []*entity.Skill) []*SkillResponse {
	out := make([]*SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, &SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category})
	}
	return out
}

// TagResponse 标签响应
type TagResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category *string `json:"category,omitempty"`
}

// NewTagResponses 批量构建标签响应
func NewTagResponses(items []*entity.ContentTag) []*TagResponse {
	out := make([]*TagResponse, 0, len(items))
	for _, t := range items {
		out = append(out, &TagResponse{ID: t.ID, Name: t.Name, Category: t.Category})
	}
	return out
}
