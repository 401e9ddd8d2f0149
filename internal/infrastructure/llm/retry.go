// Package llm 提供基于 Eino 的大模型客户端封装
package llm

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"foligo-api/internal/config"
	"foligo-api/pkg/logger"
	"foligo-api/pkg/metrics"
)

// transientSignatures 可重试错误特征（顺序匹配，小写）
// 只有命中特征的错误才重试，其余错误立即上抛。
var transientSignatures = []string{
	"connection reset",
	"connection refused",
	"timeout",
	"deadline exceeded",
	"too many requests",
	"429",
	"internal server error",
	"500",
	"bad gateway",
	"502",
	"service unavailable",
	"503",
	"gateway timeout",
	"504",
}

// IsTransientError 判断错误是否可重试
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range transientSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// Retrier 对模型调用做有限次指数退避重试
type Retrier struct {
	cfg config.LLMRetryConfig
}

// NewRetrier 创建重试器
func NewRetrier(cfg *config.Config) *Retrier {
	return &Retrier{cfg: cfg.LLM.Retry}
}

// Generate 带重试地调用 ChatModel
func (r *Retrier) Generate(ctx context.Context, m model.BaseChatModel, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	var lastErr error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.LLMRetriesTotal.WithLabelValues("generate").Inc()
			wait := r.backoff(attempt)
			logger.Warn(ctx, "retrying LLM call",
				"attempt", attempt,
				"backoff_ms", wait.Milliseconds(),
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		start := time.Now()
		msg, err := m.Generate(ctx, messages, opts...)
		metrics.LLMCallDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
		if err == nil {
			metrics.LLMCallsTotal.WithLabelValues("success").Inc()
			recordTokenUsage(msg)
			return msg, nil
		}
		lastErr = err

		if !IsTransientError(err) {
			metrics.LLMCallsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		metrics.LLMCallsTotal.WithLabelValues("transient_error").Inc()
	}
	return nil, lastErr
}

// recordTokenUsage 记录 token 用量指标
func recordTokenUsage(msg *schema.Message) {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	usage := msg.ResponseMeta.Usage
	metrics.LLMTokensUsed.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues("completion").Add(float64(usage.CompletionTokens))
}

// backoff 计算第 attempt 次重试的等待时间（指数退避 + 抖动，封顶）
func (r *Retrier) backoff(attempt int) time.Duration {
	wait := r.cfg.Initial
	for i := 1; i < attempt; i++ {
		wait = time.Duration(float64(wait) * r.cfg.Multiplier)
		if wait > r.cfg.Max {
			wait = r.cfg.Max
			break
		}
	}
	// 抖动：在 [0.5, 1.5) 区间内浮动，避免重试风暴
	jitter := 0.5 + rand.Float64()
	wait = time.Duration(float64(wait) * jitter)
	if wait > r.cfg.Max {
		wait = r.cfg.Max
	}
	return wait
}
