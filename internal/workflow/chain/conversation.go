package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	wfmodel "foligo-api/internal/workflow/model"
	wfnode "foligo-api/internal/workflow/node"
	workflowport "foligo-api/internal/workflow/port"
	workflowprompt "foligo-api/internal/workflow/prompt"
	"foligo-api/pkg/logger"
)

var defaultPromptRegistry = workflowprompt.NewRegistry()

// ConversationChain 对话轮次链：快速模型 + 指令信封 JSON 输出
type ConversationChain struct {
	factory workflowport.ChatModelFactory
	caller  workflowport.ModelCaller

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.ConversationTurnInput, *schema.Message]
	chainErr  error
}

// NewConversationChain 创建对话轮次链
func NewConversationChain(factory workflowport.ChatModelFactory, caller workflowport.ModelCaller) *ConversationChain {
	return &ConversationChain{factory: factory, caller: caller}
}

// Invoke 执行一轮对话，返回原始模型消息（信封解析交给应用层）
func (c *ConversationChain) Invoke(ctx context.Context, in *wfmodel.ConversationTurnInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type conversationChainState struct {
	In       *wfmodel.ConversationTurnInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *ConversationChain) getChain() (compose.Runnable[*wfmodel.ConversationTurnInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *ConversationChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.ConversationTurnInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.ConversationTurnInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.ConversationTurnInput) (*conversationChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			if len(in.History) == 0 {
				return nil, fmt.Errorf("conversation history is empty")
			}
			return &conversationChainState{In: in}, nil
		}),
		compose.WithNodeName("conversation.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *conversationChainState) (*conversationChainState, error) {
			msgs, err := formatConversationMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("conversation.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *conversationChainState) (*conversationChainState, error) {
			chatModel, err := c.factory.Get(ctx, "fast")
			if err != nil {
				return nil, err
			}

			outMsg, err := c.caller.Generate(ctx, chatModel, st.Messages, buildDirectiveModelOptions(true)...)
			if err != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only", "error", err.Error())
				outMsg, err = c.caller.Generate(ctx, chatModel, st.Messages, buildDirectiveModelOptions(false)...)
			}
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("conversation.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *conversationChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("conversation.finalize"),
	)

	return chain.Compile(ctx)
}

// formatConversationMessages 组装提示消息：
// 历史中除最后一条用户消息外走 history 占位符。
func formatConversationMessages(ctx context.Context, in *wfmodel.ConversationTurnInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptConversationTurnV1)
	if err != nil {
		return nil, err
	}

	last := in.History[len(in.History)-1]
	history := make([]*schema.Message, 0, len(in.History)-1)
	for _, turn := range in.History[:len(in.History)-1] {
		switch turn.Role {
		case wfmodel.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Text, nil))
		default:
			history = append(history, schema.UserMessage(turn.Text))
		}
	}

	kind := string(in.Kind)
	if kind == "" {
		kind = "(not yet determined)"
	}

	vars := map[string]any{
		"kind":          kind,
		"context_block": emptyFallback(in.ContextBlock, "(no profile available)"),
		"initial_info":  emptyFallback(in.InitialInfo, "(nothing yet)"),
		"history":       history,
		"user_message":  strings.TrimSpace(last.Text),
	}
	return tpl.Format(ctx, vars)
}

func emptyFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func buildDirectiveModelOptions(enableSchema bool) []model.Option {
	opts := make([]model.Option, 0, 2)
	if !enableSchema {
		return opts
	}
	opts = append(opts, openaiopts.WithExtraFields(map[string]any{
		"response_format": map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "turn_directive",
				"strict": false,
				"schema": turnDirectiveJSONSchema(),
			},
		},
	}))
	return opts
}

func turnDirectiveJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"message", "action"},
		"properties": map[string]any{
			"message": map[string]any{"type": "string"},
			"action": map[string]any{
				"type": "string",
				"enum": []any{"none", "fetch_post", "complete"},
			},
			"post_id": map[string]any{"type": "string"},
			"summary": map[string]any{"type": "string"},
			"kind": map[string]any{
				"type": "string",
				"enum": []any{"PROJECT", "EXPERIENCE", "BLOG", "SKILL"},
			},
		},
	}
}
