package model

import (
	"strings"
	"time"
)

// ContentKind 内容类型（与领域层枚举取值一致）
type ContentKind string

const (
	KindProject    ContentKind = "PROJECT"
	KindExperience ContentKind = "EXPERIENCE"
	KindBlog       ContentKind = "BLOG"
	KindSkill      ContentKind = "SKILL"
)

// AllKinds 所有合法内容类型
var AllKinds = []ContentKind{KindProject, KindExperience, KindBlog, KindSkill}

// ParseContentKind 解析内容类型，非法输入返回 ok=false
func ParseContentKind(s string) (ContentKind, bool) {
	k := ContentKind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// NameCategory 技能/标签候选：名称 + 可选分类
type NameCategory struct {
	Name     string  `json:"name"`
	Category *string `json:"category,omitempty"`
}

// LLMUsageMeta 模型调用元信息
type LLMUsageMeta struct {
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Temperature      float64
	GeneratedAt      time.Time
}
