package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"

	wfmodel "foligo-api/internal/workflow/model"
	workflowport "foligo-api/internal/workflow/port"
	workflowprompt "foligo-api/internal/workflow/prompt"
)

// ClassifyChain 内容类型分类链：快速模型、零温、单 token 约束输出
type ClassifyChain struct {
	factory workflowport.ChatModelFactory
	caller  workflowport.ModelCaller
}

// NewClassifyChain 创建分类链
func NewClassifyChain(factory workflowport.ChatModelFactory, caller workflowport.ModelCaller) *ClassifyChain {
	return &ClassifyChain{factory: factory, caller: caller}
}

// Invoke 执行分类，返回合法枚举值；模型输出非法时报错（由调用方走回退路径）
func (c *ClassifyChain) Invoke(ctx context.Context, in *wfmodel.ClassifyInput) (wfmodel.ContentKind, error) {
	if c == nil || c.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return "", fmt.Errorf("input is nil")
	}

	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptClassifyKindV1)
	if err != nil {
		return "", err
	}

	msgs, err := tpl.Format(ctx, map[string]any{
		"conversation_text": emptyFallback(in.ConversationText, "(empty)"),
		"initial_info":      emptyFallback(in.InitialInfo, "(nothing yet)"),
	})
	if err != nil {
		return "", err
	}

	chatModel, err := c.factory.Get(ctx, "fast")
	if err != nil {
		return "", err
	}

	outMsg, err := c.caller.Generate(ctx, chatModel, msgs,
		model.WithTemperature(0),
		model.WithMaxTokens(8),
	)
	if err != nil {
		return "", err
	}
	if outMsg == nil {
		return "", fmt.Errorf("empty llm response")
	}

	kind, ok := wfmodel.ParseContentKind(strings.TrimSpace(outMsg.Content))
	if !ok {
		return "", fmt.Errorf("classifier returned unexpected output: %q", outMsg.Content)
	}
	return kind, nil
}
