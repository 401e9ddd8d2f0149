package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"

	wfmodel "foligo-api/internal/workflow/model"
	wfnode "foligo-api/internal/workflow/node"
	workflowport "foligo-api/internal/workflow/port"
	workflowprompt "foligo-api/internal/workflow/prompt"
)

// ExtractChain 标题与元数据抽取链：快速模型、低温
type ExtractChain struct {
	factory workflowport.ChatModelFactory
	caller  workflowport.ModelCaller
}

// NewExtractChain 创建抽取链
func NewExtractChain(factory workflowport.ChatModelFactory, caller workflowport.ModelCaller) *ExtractChain {
	return &ExtractChain{factory: factory, caller: caller}
}

// ExtractTitle 抽取标题；返回值未做长度校验，回退策略由调用方执行
func (c *ExtractChain) ExtractTitle(ctx context.Context, body string) (string, error) {
	if c == nil || c.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}

	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptExtractTitleV1)
	if err != nil {
		return "", err
	}
	msgs, err := tpl.Format(ctx, map[string]any{"body": body})
	if err != nil {
		return "", err
	}

	chatModel, err := c.factory.Get(ctx, "fast")
	if err != nil {
		return "", err
	}

	outMsg, err := c.caller.Generate(ctx, chatModel, msgs,
		model.WithTemperature(0.1),
		model.WithMaxTokens(32),
	)
	if err != nil {
		return "", err
	}
	if outMsg == nil {
		return "", fmt.Errorf("empty llm response")
	}
	return strings.Trim(strings.TrimSpace(outMsg.Content), `"'`), nil
}

// ExtractMeta 按类型抽取结构化元数据；BLOG/SKILL 没有抽取模板，返回 nil
func (c *ExtractChain) ExtractMeta(ctx context.Context, in *wfmodel.ExtractInput) (json.RawMessage, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	var id workflowprompt.PromptID
	switch in.Kind {
	case wfmodel.KindProject:
		id = workflowprompt.PromptExtractProjectMetaV1
	case wfmodel.KindExperience:
		id = workflowprompt.PromptExtractExperienceMetaV1
	default:
		return nil, nil
	}

	tpl, err := defaultPromptRegistry.ChatTemplate(id)
	if err != nil {
		return nil, err
	}
	msgs, err := tpl.Format(ctx, map[string]any{
		"body":              in.Body,
		"conversation_text": emptyFallback(in.ConversationText, "(not provided)"),
	})
	if err != nil {
		return nil, err
	}

	chatModel, err := c.factory.Get(ctx, "fast")
	if err != nil {
		return nil, err
	}

	outMsg, err := c.caller.Generate(ctx, chatModel, msgs,
		model.WithTemperature(0.1),
	)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}

	raw := wfnode.ExtractJSONObject(outMsg.Content)
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("metadata extraction returned invalid json")
	}
	return json.RawMessage(raw), nil
}
