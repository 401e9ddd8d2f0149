// Package entity 定义领域实体
package entity

import (
	"encoding/json"
	"time"
)

// ContentKind 内容类型
type ContentKind string

const (
	ContentKindProject    ContentKind = "PROJECT"
	ContentKindExperience ContentKind = "EXPERIENCE"
	ContentKindBlog       ContentKind = "BLOG"
	ContentKindSkill      ContentKind = "SKILL"
)

// IsValid 检查内容类型是否合法
func (k ContentKind) IsValid() bool {
	switch k {
	case ContentKindProject, ContentKindExperience, ContentKindBlog, ContentKindSkill:
		return true
	default:
		return false
	}
}

// ContentStatus 内容状态
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// Content 作品集内容条目
// 版本历史通过 RevisionOf/RevisionNumber 自引用链表示；
// 每个修订是完整快照拷贝，不是 diff。
type Content struct {
	ID             string          `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID      string          `json:"project_id" gorm:"type:uuid;index;not null"`
	Kind           ContentKind     `json:"kind" gorm:"type:varchar(16);not null"`
	Title          string          `json:"title" gorm:"type:varchar(255);not null"`
	Excerpt        string          `json:"excerpt,omitempty" gorm:"type:text"`
	Body           string          `json:"body,omitempty" gorm:"type:text"`
	StructuredData json.RawMessage `json:"structured_data,omitempty" gorm:"type:jsonb"`
	Status         ContentStatus   `json:"status" gorm:"type:varchar(16);default:'draft'"`
	RevisionOf     *string         `json:"revision_of,omitempty" gorm:"type:uuid;index"`
	RevisionNumber int             `json:"revision_number" gorm:"default:0"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Content) TableName() string {
	return "contents"
}

// NewContent 创建新内容
func NewContent(projectID string, kind ContentKind, title string) *Content {
	now := time.Now()
	return &Content{
		ProjectID: projectID,
		Kind:      kind,
		Title:     title,
		Status:    ContentStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot 生成当前内容的修订快照（完整拷贝，指向原内容）
func (c *Content) Snapshot(revisionNumber int) *Content {
	data := make(json.RawMessage, len(c.StructuredData))
	copy(data, c.StructuredData)
	id := c.ID
	return &Content{
		ProjectID:      c.ProjectID,
		Kind:           c.Kind,
		Title:          c.Title,
		Excerpt:        c.Excerpt,
		Body:           c.Body,
		StructuredData: data,
		Status:         c.Status,
		RevisionOf:     &id,
		RevisionNumber: revisionNumber,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}
