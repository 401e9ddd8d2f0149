// Package entity 定义领域实体
package entity

import (
	"regexp"
	"strings"
	"time"
)

// ProjectSettings 项目设置
type ProjectSettings struct {
	Template   string `json:"template,omitempty"`
	AccentHex  string `json:"accent_hex,omitempty"`
	ShowEmail  bool   `json:"show_email,omitempty"`
	ShowSkills bool   `json:"show_skills,omitempty"`
}

// Project 作品集项目实体
// 一个项目对应一个子域名下渲染的站点。
type Project struct {
	ID          string           `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID     string           `json:"owner_id" gorm:"type:uuid;index;not null"`
	Name        string           `json:"name" gorm:"type:varchar(255);not null"`
	Subdomain   string           `json:"subdomain" gorm:"type:varchar(63);uniqueIndex;not null"`
	Description string           `json:"description,omitempty" gorm:"type:text"`
	Bio         string           `json:"bio,omitempty" gorm:"type:text"`
	Settings    *ProjectSettings `json:"settings,omitempty" gorm:"type:jsonb;serializer:json"`
	Published   bool             `json:"published" gorm:"default:false"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// NewProject 创建新项目
func NewProject(ownerID, name, subdomain string) *Project {
	now := time.Now()
	return &Project{
		OwnerID:   ownerID,
		Name:      name,
		Subdomain: NormalizeSubdomain(subdomain),
		Settings:  &ProjectSettings{ShowSkills: true},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

var subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// NormalizeSubdomain 规范化子域名（小写、去空白）
func NormalizeSubdomain(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValidSubdomain 校验子域名格式（DNS label）
func IsValidSubdomain(s string) bool {
	return subdomainRe.MatchString(s)
}
