package chain

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	wfmodel "foligo-api/internal/workflow/model"
	workflowport "foligo-api/internal/workflow/port"
	workflowprompt "foligo-api/internal/workflow/prompt"
)

// GenerateChain 正文生成链：高质量模型，按 kind 选模板；编辑模式用整体改写模板
type GenerateChain struct {
	factory workflowport.ChatModelFactory
	caller  workflowport.ModelCaller

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.GenerateInput, *schema.Message]
	chainErr  error
}

// NewGenerateChain 创建生成链
func NewGenerateChain(factory workflowport.ChatModelFactory, caller workflowport.ModelCaller) *GenerateChain {
	return &GenerateChain{factory: factory, caller: caller}
}

// Invoke 执行生成，返回原始模型消息（后处理交给应用层）
func (c *GenerateChain) Invoke(ctx context.Context, in *wfmodel.GenerateInput) (*schema.Message, error) {
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

type generateChainState struct {
	In       *wfmodel.GenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *GenerateChain) getChain() (compose.Runnable[*wfmodel.GenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *GenerateChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.GenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.GenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.GenerateInput) (*generateChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			if _, err := promptForGenerate(in); err != nil {
				return nil, err
			}
			return &generateChainState{In: in}, nil
		}),
		compose.WithNodeName("generate.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *generateChainState) (*generateChainState, error) {
			msgs, err := formatGenerateMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("generate.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *generateChainState) (*generateChainState, error) {
			chatModel, err := c.factory.Get(ctx, "quality")
			if err != nil {
				return nil, err
			}

			outMsg, err := c.caller.Generate(ctx, chatModel, st.Messages)
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("generate.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *generateChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("generate.finalize"),
	)

	return chain.Compile(ctx)
}

// promptForGenerate 根据模式和类型选择模板
func promptForGenerate(in *wfmodel.GenerateInput) (workflowprompt.PromptID, error) {
	if in.Mode == wfmodel.ModeEdit {
		return workflowprompt.PromptEditContentV1, nil
	}
	switch in.Kind {
	case wfmodel.KindProject:
		return workflowprompt.PromptGenerateProjectV1, nil
	case wfmodel.KindExperience:
		return workflowprompt.PromptGenerateExperienceV1, nil
	case wfmodel.KindBlog:
		return workflowprompt.PromptGenerateBlogV1, nil
	case wfmodel.KindSkill:
		return workflowprompt.PromptGenerateSkillV1, nil
	default:
		return "", fmt.Errorf("unknown content kind: %s", in.Kind)
	}
}

func formatGenerateMessages(ctx context.Context, in *wfmodel.GenerateInput) ([]*schema.Message, error) {
	id, err := promptForGenerate(in)
	if err != nil {
		return nil, err
	}
	tpl, err := defaultPromptRegistry.ChatTemplate(id)
	if err != nil {
		return nil, err
	}

	var vars map[string]any
	if in.Mode == wfmodel.ModeEdit {
		vars = map[string]any{
			"current_body":   in.CurrentBody,
			"change_request": in.ChangeRequest,
			"context_block":  emptyFallback(in.ContextBlock, "(no profile available)"),
		}
	} else {
		vars = map[string]any{
			"context_block": emptyFallback(in.ContextBlock, "(no profile available)"),
			"summary":       in.Summary,
			"history_block": emptyFallback(in.HistoryBlock, "(not provided)"),
		}
	}
	return tpl.Format(ctx, vars)
}
