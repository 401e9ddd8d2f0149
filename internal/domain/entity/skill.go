// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// Skill 技能实体
// 去重键为 (lower(name), category-or-null)，由唯一索引保证；
// 本管线只创建和解除关联，从不删除技能行。
type Skill struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(128);not null"`
	Category  *string   `json:"category,omitempty" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Skill) TableName() string {
	return "skills"
}

// NewSkill 创建新技能
func NewSkill(name string, category *string) *Skill {
	return &Skill{
		Name:      strings.TrimSpace(name),
		Category:  normalizeCategory(category),
		CreatedAt: time.Now(),
	}
}

// normalizeCategory 空白分类归一化为 nil
func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	c := strings.TrimSpace(*category)
	if c == "" {
		return nil
	}
	return &c
}

// NameCategory 实体解析候选：名称 + 可选分类
type NameCategory struct {
	Name     string  `json:"name"`
	Category *string `json:"category,omitempty"`
}

// Normalize 去空白并归一化分类
func (nc NameCategory) Normalize() NameCategory {
	return NameCategory{
		Name:     strings.TrimSpace(nc.Name),
		Category: normalizeCategory(nc.Category),
	}
}
