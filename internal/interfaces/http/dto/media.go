package dto

import (
	"time"

	"foligo-api/internal/domain/entity"
)

// MediaResponse 媒体响应；文件内容经 /file 代理访问
type MediaResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMediaResponse 构建媒体响应
func NewMediaResponse(m *entity.Media) *MediaResponse {
	return &MediaResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		FileName:  m.FileName,
		MimeType:  m.MimeType,
		Size:      m.Size,
		CreatedAt: m.CreatedAt,
	}
}

// NewMediaResponses 批量构建媒体响应
func NewMediaResponses(items []*entity.Media) []*MediaResponse {
	out := make([]*MediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, NewMediaResponse(m))
	}
	return out
}

// VoiceWebhookRequest 语音完成回调请求
type VoiceWebhookRequest struct {
	Summary     string `json:"summary" binding:"required"`
	ProjectID   string `json:"projectId" binding:"required"`
	ContentType string `json:"contentType,omitempty"`
}
