package model

import "encoding/json"

// GenerateMode 生成模式
type GenerateMode string

const (
	ModeCreate GenerateMode = "create"
	ModeEdit   GenerateMode = "edit"
)

// GenerateInput 正文生成链输入
type GenerateInput struct {
	Mode GenerateMode
	Kind ContentKind

	// HistoryBlock 对话历史的文本化表示
	HistoryBlock string

	// Summary 对话完成时合成的摘要
	Summary string

	// CurrentBody 编辑模式下的现有正文
	CurrentBody string

	// ChangeRequest 编辑模式下的修改要求
	ChangeRequest string

	// ContextBlock 作者画像文本
	ContextBlock string
}

// GeneratedContent 生成结果
// Body 为 Markdown（无 H1、无残留 JSON 围栏块）；
// StructuredData 形状随 Kind 变化，见各 *Data 类型。
type GeneratedContent struct {
	Title          string
	Excerpt        string
	Body           string
	StructuredData json.RawMessage
	Skills         []NameCategory
	Tags           []NameCategory
	Meta           LLMUsageMeta
}

// ProjectLinks 项目外链
type ProjectLinks struct {
	Github  string   `json:"github,omitempty"`
	Devpost string   `json:"devpost,omitempty"`
	Other   []string `json:"other,omitempty"`
}

// ProjectData PROJECT 类型的结构化数据
type ProjectData struct {
	Title         string       `json:"title"`
	Excerpt       string       `json:"excerpt,omitempty"`
	StartDate     string       `json:"startDate,omitempty"`
	EndDate       string       `json:"endDate,omitempty"`
	IsOngoing     bool         `json:"isOngoing"`
	FeaturedImage string       `json:"featuredImage,omitempty"`
	ProjectLinks  ProjectLinks `json:"projectLinks"`
	Contributors  []string     `json:"contributors,omitempty"`
	Skills        []string     `json:"skills,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
}

// ExperienceCategory 经历类别
type ExperienceCategory string

const (
	ExperienceJob           ExperienceCategory = "JOB"
	ExperienceEducation     ExperienceCategory = "EDUCATION"
	ExperienceCertification ExperienceCategory = "CERTIFICATION"
)

// LocationType 工作地点类型
type LocationType string

const (
	LocationRemote LocationType = "REMOTE"
	LocationHybrid LocationType = "HYBRID"
	LocationOnsite LocationType = "ONSITE"
)

// RoleEntry 经历中的单个角色
type RoleEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	IsCurrent   bool     `json:"isCurrent"`
	Skills      []string `json:"skills,omitempty"`
}

// ExperienceData EXPERIENCE 类型的结构化数据
type ExperienceData struct {
	Title              string             `json:"title"`
	Excerpt            string             `json:"excerpt,omitempty"`
	ExperienceCategory ExperienceCategory `json:"experienceCategory,omitempty"`
	Location           string             `json:"location,omitempty"`
	LocationType       LocationType       `json:"locationType,omitempty"`
	StartDate          string             `json:"startDate,omitempty"`
	EndDate            string             `json:"endDate,omitempty"`
	IsOngoing          bool               `json:"isOngoing"`
	Roles              []RoleEntry        `json:"roles,omitempty"`
	Skills             []string           `json:"skills,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
}

// BlogData BLOG 类型的结构化数据
type BlogData struct {
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// SkillData SKILL 类型的结构化数据
type SkillData struct {
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt,omitempty"`
	Skills  []string `json:"skills,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// EntityBlock 正文围栏块中提取出的技能/标签数组
type EntityBlock struct {
	Skills []NameCategory `json:"skills,omitempty"`
	Tags   []NameCategory `json:"tags,omitempty"`
}

// ExtractInput 标题/元数据抽取链输入
type ExtractInput struct {
	Kind ContentKind

	// Body 已生成的正文
	Body string

	// ConversationText 原始对话文本（元数据回退提取用）
	ConversationText string
}
