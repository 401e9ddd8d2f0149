package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"foligo-api/internal/workflow/chain"
	wfmodel "foligo-api/internal/workflow/model"
	wfnode "foligo-api/internal/workflow/node"
	apperrors "foligo-api/pkg/errors"
	"foligo-api/pkg/logger"
	"foligo-api/pkg/metrics"
)

const (
	// turnWindowSize 发送给模型的最近轮次窗口上限
	turnWindowSize = 10
	// maxToolCallsPerTurn 单次请求内 fetch_post 自动续跑的上限
	maxToolCallsPerTurn = 3
)

// turnState 对话处理状态机
type turnState string

const (
	stateAsking          turnState = "ASKING"
	stateToolcallPending turnState = "TOOLCALL_PENDING"
	stateDone            turnState = "DONE"
)

// ContentPost 取回的已有内容条目（供模型参考）
type ContentPost struct {
	ID    string
	Title string
	Body  string
}

// ContentReader 按 ID 取回项目内某条内容；不存在时返回 nil, nil
type ContentReader interface {
	GetPost(ctx context.Context, projectID, postID string) (*ContentPost, error)
}

// TurnInput 一轮对话处理的输入（调用方每次重传完整历史）
type TurnInput struct {
	ProjectID string

	History     []wfmodel.ConversationTurn
	Kind        wfmodel.ContentKind
	InitialInfo string

	// ContextBlock 作者画像文本（ContextBuilder 产出）
	ContextBlock string
}

// TurnResult 一轮对话处理的结果
type TurnResult struct {
	Message string `json:"message"`

	Done          bool               `json:"done"`
	Summary       string             `json:"summary,omitempty"`
	CorrectedKind wfmodel.ContentKind `json:"corrected_kind,omitempty"`

	// FetchedPostIDs 本轮自动折叠进历史的内容 ID（调试用）
	FetchedPostIDs []string `json:"fetched_post_ids,omitempty"`
}

// TurnHandler 对话轮次处理器。
// 状态机：ASKING →(fetch_post)→ TOOLCALL_PENDING →(折叠取回内容)→ ASKING，
// ASKING →(complete)→ DONE。fetch_post 在同一次请求内自动续跑，有界。
type TurnHandler struct {
	conversation *chain.ConversationChain
	reader       ContentReader
}

// NewTurnHandler 创建对话轮次处理器
func NewTurnHandler(conversation *chain.ConversationChain, reader ContentReader) *TurnHandler {
	return &TurnHandler{conversation: conversation, reader: reader}
}

// HandleTurn 处理一轮对话
func (h *TurnHandler) HandleTurn(ctx context.Context, in *TurnInput) (*TurnResult, error) {
	if h == nil || h.conversation == nil {
		return nil, apperrors.ErrInternalError.WithDetail("conversation chain not configured")
	}
	if in == nil || len(in.History) == 0 {
		return nil, apperrors.New(apperrors.CodeConversationInvalid, "conversation history is empty")
	}
	last := in.History[len(in.History)-1]
	if last.Role != wfmodel.RoleUser {
		return nil, apperrors.New(apperrors.CodeConversationInvalid, "last turn must be a user turn")
	}

	// 历史只追加不修改；取最近窗口发给模型
	history := append([]wfmodel.ConversationTurn(nil), in.History...)
	state := stateAsking
	fetched := make([]string, 0, maxToolCallsPerTurn)

	var lastMessage string
	for call := 0; call <= maxToolCallsPerTurn; call++ {
		outMsg, err := h.conversation.Invoke(ctx, &wfmodel.ConversationTurnInput{
			History:      windowTurns(history, turnWindowSize),
			Kind:         in.Kind,
			InitialInfo:  in.InitialInfo,
			ContextBlock: in.ContextBlock,
		})
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeLLMCallFailed, "conversation turn failed")
		}

		directive, ok := parseDirective(outMsg.Content)
		if !ok {
			// 信封解析失败按纯文本处理
			metrics.ConversationTurnsTotal.WithLabelValues("plain_text").Inc()
			return &TurnResult{Message: strings.TrimSpace(outMsg.Content), FetchedPostIDs: fetched}, nil
		}
		lastMessage = directive.Message

		switch directive.Action {
		case wfmodel.ActionComplete:
			summary := strings.TrimSpace(directive.Summary)
			if summary == "" {
				// 缺摘要的完成指令按普通消息处理，留在 ASKING
				metrics.ConversationTurnsTotal.WithLabelValues("incomplete_done").Inc()
				return &TurnResult{Message: directive.Message, FetchedPostIDs: fetched}, nil
			}
			state = stateDone
			metrics.ConversationTurnsTotal.WithLabelValues("complete").Inc()
			return &TurnResult{
				Message:        directive.Message,
				Done:           true,
				Summary:        summary,
				CorrectedKind:  h.resolveKind(directive.Kind, in.Kind, history),
				FetchedPostIDs: fetched,
			}, nil

		case wfmodel.ActionFetchPost:
			state = stateToolcallPending
			metrics.ConversationTurnsTotal.WithLabelValues("fetch_post").Inc()
			history = append(history, h.foldPost(ctx, in.ProjectID, directive.PostID, &fetched))
			// 折叠后立即续跑，回到 ASKING
			state = stateAsking

		default:
			metrics.ConversationTurnsTotal.WithLabelValues("ask").Inc()
			return &TurnResult{Message: directive.Message, FetchedPostIDs: fetched}, nil
		}
	}

	// 工具调用额度用尽：把最后一条消息还给调用方，留在 ASKING
	logger.Warn(ctx, "turn handler: tool call budget exhausted",
		"project_id", in.ProjectID, "state", string(state), "fetched", len(fetched))
	return &TurnResult{Message: lastMessage, FetchedPostIDs: fetched}, nil
}

// foldPost 取回内容并合成一条用户轮；取不到时告知模型继续提问
func (h *TurnHandler) foldPost(ctx context.Context, projectID, postID string, fetched *[]string) wfmodel.ConversationTurn {
	postID = strings.TrimSpace(postID)
	if h.reader == nil || postID == "" {
		return wfmodel.ConversationTurn{
			Role: wfmodel.RoleUser,
			Text: "(The requested post could not be found. Continue without it.)",
		}
	}

	post, err := h.reader.GetPost(ctx, projectID, postID)
	if err != nil || post == nil {
		if err != nil {
			logger.Warn(ctx, "turn handler: fetch post failed", "post_id", postID, "error", err.Error())
		}
		return wfmodel.ConversationTurn{
			Role: wfmodel.RoleUser,
			Text: fmt.Sprintf("(Post %s could not be found. Continue without it.)", postID),
		}
	}

	*fetched = append(*fetched, post.ID)
	return wfmodel.ConversationTurn{
		Role: wfmodel.RoleUser,
		Text: fmt.Sprintf("(Requested post %s)\nTitle: %s\n\n%s", post.ID, post.Title, post.Body),
	}
}

// resolveKind 解析完成指令里的类型；非法时退回当前类型，再退回关键词分类
func (h *TurnHandler) resolveKind(declared string, current wfmodel.ContentKind, history []wfmodel.ConversationTurn) wfmodel.ContentKind {
	if kind, ok := wfmodel.ParseContentKind(declared); ok {
		return kind
	}
	if current != "" {
		return current
	}
	return Reclassify(FormatHistoryBlock(history))
}

// parseDirective 从模型输出提取指令信封；失败时 ok=false
func parseDirective(content string) (*wfmodel.TurnDirective, bool) {
	raw := wfnode.ExtractJSONObject(content)
	if raw == "" {
		return nil, false
	}
	var d wfmodel.TurnDirective
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, false
	}
	if strings.TrimSpace(d.Message) == "" {
		return nil, false
	}
	if d.Action == "" {
		d.Action = wfmodel.ActionNone
	}
	return &d, true
}

// windowTurns 取最近 n 轮
func windowTurns(history []wfmodel.ConversationTurn, n int) []wfmodel.ConversationTurn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// FormatHistoryBlock 把对话历史文本化（生成与回退分类共用）
func FormatHistoryBlock(history []wfmodel.ConversationTurn) string {
	var sb strings.Builder
	for _, turn := range history {
		switch turn.Role {
		case wfmodel.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(strings.TrimSpace(turn.Text))
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
