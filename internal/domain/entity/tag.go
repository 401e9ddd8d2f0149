// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// ContentTag 内容标签实体
// 与 Skill 同样按 (lower(name), category-or-null) 去重。
type ContentTag struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(128);not null"`
	Category  *string   `json:"category,omitempty" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ContentTag) TableName() string {
	return "content_tags"
}

// NewContentTag 创建新标签
func NewContentTag(name string, category *string) *ContentTag {
	return &ContentTag{
		Name:      strings.TrimSpace(name),
		Category:  normalizeCategory(category),
		CreatedAt: time.Now(),
	}
}
