package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModelFactory 定义工作流层对 LLM ChatModel 的最小依赖（port）。
// name 支持逻辑名 fast/quality。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// ModelCaller 封装模型调用策略（重试等），工作流层不关心实现。
type ModelCaller interface {
	Generate(ctx context.Context, m model.BaseChatModel, messages []*schema.Message, opts ...model.Option) (*schema.Message, error)
}
