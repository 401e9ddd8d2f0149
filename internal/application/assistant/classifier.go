package assistant

import (
	"context"
	"strings"

	"foligo-api/internal/workflow/chain"
	wfmodel "foligo-api/internal/workflow/model"
	"foligo-api/pkg/logger"
	"foligo-api/pkg/metrics"
)

// fallbackRule 关键词回退规则：按声明顺序匹配，先命中先赢
type fallbackRule struct {
	kind     wfmodel.ContentKind
	keywords []string
}

// fallbackRules 确定性回退表。
// 顺序即优先级：职位/公司措辞 > 构建/发布措辞 > 泛化职业/教育词 >
// 代码托管词 > 技能熟练度词；全不命中时默认 BLOG。
var fallbackRules = []fallbackRule{
	{wfmodel.KindExperience, []string{
		"worked at", "working at", "work at",
		"my role", "my position", "position at",
		"employed at", "employer", "hired at", "internship at", "intern at",
	}},
	{wfmodel.KindProject, []string{
		"i built", "we built", "i made", "we made",
		"i created", "we created", "i developed", "we developed",
		"shipped", "launched", "side project", "hackathon", "prototype",
	}},
	{wfmodel.KindExperience, []string{
		"job", "career", "responsibilities", "promoted",
		"education", "degree", "university", "college", "graduated",
		"certification", "certified",
	}},
	{wfmodel.KindProject, []string{
		"github.com", "gitlab.com", "devpost.com", "repository", "repo",
	}},
	{wfmodel.KindSkill, []string{
		"proficient", "proficiency", "skilled in", "expertise in",
		"experienced with", "years of experience with",
	}},
}

// Reclassify 纯函数回退分类：按规则表顺序匹配证据文本
func Reclassify(evidence string) wfmodel.ContentKind {
	text := strings.ToLower(evidence)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.kind
			}
		}
	}
	return wfmodel.KindBlog
}

// Classifier 内容类型分类器：约束输出模型调用为主，关键词表兜底
type Classifier struct {
	classify *chain.ClassifyChain
}

// NewClassifier 创建分类器
func NewClassifier(classify *chain.ClassifyChain) *Classifier {
	return &Classifier{classify: classify}
}

// Classify 推断内容类型。
// 主路径失败（调用错误或输出非法枚举）时走确定性回退，不向上抛错。
func (c *Classifier) Classify(ctx context.Context, conversationText, initialInfo string) wfmodel.ContentKind {
	if c != nil && c.classify != nil {
		kind, err := c.classify.Invoke(ctx, &wfmodel.ClassifyInput{
			ConversationText: conversationText,
			InitialInfo:      initialInfo,
		})
		if err == nil {
			return kind
		}
		logger.Warn(ctx, "classifier primary path failed, using keyword fallback", "error", err.Error())
	}

	kind := Reclassify(conversationText + "\n" + initialInfo)
	metrics.ClassifierFallbackTotal.WithLabelValues(string(kind)).Inc()
	return kind
}
