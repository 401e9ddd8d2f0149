package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"foligo-api/internal/workflow/chain"
	wfmodel "foligo-api/internal/workflow/model"
	wfnode "foligo-api/internal/workflow/node"
	apperrors "foligo-api/pkg/errors"
	"foligo-api/pkg/logger"
	"foligo-api/pkg/metrics"
)

// minTitleRunes 抽取标题的最短长度，低于此值走类型回退标题
const minTitleRunes = 3

// fallbackTitles 各类型的回退标题
var fallbackTitles = map[wfmodel.ContentKind]string{
	wfmodel.KindProject:    "Untitled Project",
	wfmodel.KindExperience: "Work Experience",
	wfmodel.KindBlog:       "Untitled Post",
	wfmodel.KindSkill:      "Skill",
}

// GenerateRequest 最终生成请求
type GenerateRequest struct {
	Mode wfmodel.GenerateMode
	Kind wfmodel.ContentKind

	// History 对话历史（创建模式），Summary 为完成指令产出的摘要
	History []wfmodel.ConversationTurn
	Summary string

	// CurrentBody/ChangeRequest 编辑模式的现有正文与修改要求
	CurrentBody   string
	ChangeRequest string

	// ContextBlock 作者画像文本
	ContextBlock string
}

// Generator 最终内容生成器。
// 生成正文后按固定顺序做后处理：剥实体围栏块、剥前言和游离标题、
// 派生摘要、抽取标题（带回退）、抽取元数据（带正则回退）。
type Generator struct {
	generate *chain.GenerateChain
	extract  *chain.ExtractChain
}

// NewGenerator 创建生成器
func NewGenerator(generate *chain.GenerateChain, extract *chain.ExtractChain) *Generator {
	return &Generator{generate: generate, extract: extract}
}

// Generate 执行生成与后处理。
// 正文生成失败（重试耗尽）直接上抛；标题和元数据抽取失败走回退，不失败整个请求。
func (g *Generator) Generate(ctx context.Context, req *GenerateRequest) (*wfmodel.GeneratedContent, error) {
	if g == nil || g.generate == nil {
		return nil, apperrors.ErrInternalError.WithDetail("generate chain not configured")
	}
	if req == nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("request is nil")
	}
	if _, ok := wfmodel.ParseContentKind(string(req.Kind)); !ok {
		return nil, apperrors.ErrInvalidParam.WithDetail("unknown content kind: " + string(req.Kind))
	}
	if req.Mode != wfmodel.ModeCreate && req.Mode != wfmodel.ModeEdit {
		return nil, apperrors.ErrInvalidParam.WithDetail("unknown generate mode: " + string(req.Mode))
	}

	start := time.Now()
	out, err := g.doGenerate(ctx, req)
	metrics.ContentGenerationDuration.WithLabelValues(string(req.Kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ContentGenerationTotal.WithLabelValues(string(req.Kind), string(req.Mode), "error").Inc()
		return nil, err
	}
	metrics.ContentGenerationTotal.WithLabelValues(string(req.Kind), string(req.Mode), "success").Inc()
	return out, nil
}

func (g *Generator) doGenerate(ctx context.Context, req *GenerateRequest) (*wfmodel.GeneratedContent, error) {
	conversationText := FormatHistoryBlock(req.History)

	outMsg, err := g.generate.Invoke(ctx, &wfmodel.GenerateInput{
		Mode:          req.Mode,
		Kind:          req.Kind,
		HistoryBlock:  conversationText,
		Summary:       req.Summary,
		CurrentBody:   req.CurrentBody,
		ChangeRequest: req.ChangeRequest,
		ContextBlock:  req.ContextBlock,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeGenerationFailed, "content generation failed")
	}

	// 1. 剥离技能/标签围栏块（BLOG 和编辑输出没有该块，属正常）
	body, block := wfnode.StripFencedEntityBlock(outMsg.Content)
	var entities wfmodel.EntityBlock
	if block != "" {
		if uerr := json.Unmarshal([]byte(block), &entities); uerr != nil {
			logger.Warn(ctx, "generator: entity block not parseable", "error", uerr.Error())
		}
	}

	// 2. 剥离前言和游离的一级标题（标题不进正文）
	body = wfnode.StripPreamble(body)
	body = wfnode.StripLeadingHeading(body)
	body = strings.TrimSpace(body)

	// 4. 抽取标题；失败或过短时用类型回退标题
	title := g.extractTitle(ctx, req.Kind, body)

	// 5. 抽取元数据；失败时对原始对话文本做正则兜底
	structured, structuredExcerpt := g.buildStructuredData(ctx, req.Kind, title, body, conversationText, &entities)

	// 3. 派生摘要：结构化摘要优先，否则正文压平取前 200 字符加省略号
	excerpt := wfnode.DeriveExcerpt(structuredExcerpt, body)

	return &wfmodel.GeneratedContent{
		Title:          title,
		Excerpt:        excerpt,
		Body:           body,
		StructuredData: structured,
		Skills:         entities.Skills,
		Tags:           entities.Tags,
	}, nil
}

func (g *Generator) extractTitle(ctx context.Context, kind wfmodel.ContentKind, body string) string {
	title, err := g.extract.ExtractTitle(ctx, body)
	if err != nil {
		logger.Warn(ctx, "generator: title extraction failed, using fallback", "kind", string(kind), "error", err.Error())
		return fallbackTitles[kind]
	}
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) < minTitleRunes {
		return fallbackTitles[kind]
	}
	return title
}

// buildStructuredData 组装类型化的结构化数据，返回其 JSON 和其中的摘要字段
func (g *Generator) buildStructuredData(
	ctx context.Context,
	kind wfmodel.ContentKind,
	title, body, conversationText string,
	entities *wfmodel.EntityBlock,
) (json.RawMessage, string) {
	raw, err := g.extract.ExtractMeta(ctx, &wfmodel.ExtractInput{
		Kind:             kind,
		Body:             body,
		ConversationText: conversationText,
	})
	if err != nil {
		logger.Warn(ctx, "generator: metadata extraction failed, using regex fallback",
			"kind", string(kind), "error", err.Error())
		raw = nil
	}

	skills := nameList(entities.Skills)
	tags := nameList(entities.Tags)

	switch kind {
	case wfmodel.KindProject:
		var data wfmodel.ProjectData
		unmarshalLoose(ctx, raw, &data)
		data.Title = title
		data.Excerpt = strings.TrimSpace(data.Excerpt)
		if data.ProjectLinks.Github == "" {
			data.ProjectLinks.Github = wfnode.ExtractGithubURL(conversationText)
		}
		if data.ProjectLinks.Devpost == "" {
			data.ProjectLinks.Devpost = wfnode.ExtractDevpostURL(conversationText)
		}
		if !data.IsOngoing {
			data.IsOngoing = wfnode.DetectOngoing(conversationText)
		}
		if len(data.Skills) == 0 {
			data.Skills = skills
		}
		if len(data.Tags) == 0 {
			data.Tags = tags
		}
		return mustMarshal(&data), data.Excerpt

	case wfmodel.KindExperience:
		var data wfmodel.ExperienceData
		unmarshalLoose(ctx, raw, &data)
		data.Title = title
		data.Excerpt = strings.TrimSpace(data.Excerpt)
		if data.ExperienceCategory == "" {
			data.ExperienceCategory = wfmodel.ExperienceJob
		}
		if data.LocationType == "" {
			data.LocationType = wfmodel.LocationType(wfnode.DetectLocationType(conversationText))
		}
		if !data.IsOngoing {
			data.IsOngoing = wfnode.DetectOngoing(conversationText)
		}
		if len(data.Skills) == 0 {
			data.Skills = skills
		}
		if len(data.Tags) == 0 {
			data.Tags = tags
		}
		return mustMarshal(&data), data.Excerpt

	case wfmodel.KindSkill:
		data := wfmodel.SkillData{Title: title, Skills: skills, Tags: tags}
		return mustMarshal(&data), ""

	default:
		data := wfmodel.BlogData{Title: title, Tags: tags}
		return mustMarshal(&data), ""
	}
}

// unmarshalLoose 宽松解析抽取结果；形状不符只记日志，字段留零值走回退
func unmarshalLoose(ctx context.Context, raw json.RawMessage, v any) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logger.Warn(ctx, "generator: extracted metadata shape mismatch", "error", err.Error())
	}
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return json.RawMessage(b)
}

func nameList(items []wfmodel.NameCategory) []string {
	if len(items) == 0 {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
