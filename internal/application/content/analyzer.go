package content

import (
	"context"
	"encoding/json"
	"time"

	"foligo-api/internal/application/assistant"
	"foligo-api/internal/domain/entity"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/infrastructure/messaging"
	"foligo-api/pkg/logger"
	"foligo-api/pkg/metrics"
)

const analyzeJobType = "content_analyze"

// analyzeSidecar 分析任务关心的结构化数据子集
type analyzeSidecar struct {
	Skills []string `json:"skills"`
	Tags   []string `json:"tags"`
}

// Analyzer 后台内容分析任务。
// 对新建/编辑的内容补充技能标签关联，并用分类器复核内容类型；
// 所有失败只记日志，从不回传给触发写入的请求。
type Analyzer struct {
	contents   repository.ContentRepository
	resolver   *EntityResolver
	classifier *assistant.Classifier
}

// NewAnalyzer 创建内容分析器
func NewAnalyzer(contents repository.ContentRepository, resolver *EntityResolver, classifier *assistant.Classifier) *Analyzer {
	return &Analyzer{contents: contents, resolver: resolver, classifier: classifier}
}

// HandleMessage 处理一条分析消息（注册到 Stream 消费者）
func (a *Analyzer) HandleMessage(ctx context.Context, msg *messaging.Message) error {
	start := time.Now()

	var job messaging.ContentAnalyzeMessage
	if err := msg.UnmarshalPayload(&job); err != nil {
		// 消息体损坏无法重试，记日志后吞掉
		logger.Error(ctx, "analyzer: malformed analyze message", err, "message_id", msg.ID)
		metrics.BackgroundJobsTotal.WithLabelValues(analyzeJobType, "malformed").Inc()
		return nil
	}

	ctx = logger.WithContext(ctx, logger.ContentIDKey, job.ContentID)
	a.analyze(ctx, &job)

	metrics.BackgroundJobDuration.WithLabelValues(analyzeJobType).Observe(time.Since(start).Seconds())
	return nil
}

func (a *Analyzer) analyze(ctx context.Context, job *messaging.ContentAnalyzeMessage) {
	c, err := a.contents.GetByID(ctx, job.ContentID)
	if err != nil {
		logger.Warn(ctx, "analyzer: load content failed", "error", err.Error())
		metrics.BackgroundJobsTotal.WithLabelValues(analyzeJobType, "error").Inc()
		return
	}
	if c == nil {
		// 任务入队后内容被删，正常跳过
		logger.Info(ctx, "analyzer: content no longer exists", "reason", job.Reason)
		metrics.BackgroundJobsTotal.WithLabelValues(analyzeJobType, "skipped").Inc()
		return
	}

	a.linkSidecarEntities(ctx, c)
	a.revalidateKind(ctx, c)
	metrics.BackgroundJobsTotal.WithLabelValues(analyzeJobType, "success").Inc()
}

// linkSidecarEntities 把结构化数据里的技能/标签名解析并关联到内容
func (a *Analyzer) linkSidecarEntities(ctx context.Context, c *entity.Content) {
	if a.resolver == nil || len(c.StructuredData) == 0 {
		return
	}
	var sidecar analyzeSidecar
	if err := json.Unmarshal(c.StructuredData, &sidecar); err != nil {
		logger.Warn(ctx, "analyzer: structured data not parseable", "error", err.Error())
		return
	}

	a.resolver.ResolveSkills(ctx, namesToCandidates(sidecar.Skills), c.ProjectID, c.ID)
	a.resolver.ResolveTags(ctx, namesToCandidates(sidecar.Tags), c.ID)
}

// revalidateKind 用分类器复核内容类型；不一致只记日志，不改写内容
func (a *Analyzer) revalidateKind(ctx context.Context, c *entity.Content) {
	if a.classifier == nil {
		return
	}
	inferred := a.classifier.Classify(ctx, c.Body, c.Excerpt)
	if string(inferred) != string(c.Kind) {
		logger.Info(ctx, "analyzer: kind mismatch",
			"declared", string(c.Kind), "inferred", string(inferred))
	}
}

func namesToCandidates(names []string) []entity.NameCategory {
	out := make([]entity.NameCategory, 0, len(names))
	for _, name := range names {
		out = append(out, entity.NameCategory{Name: name})
	}
	return out
}
