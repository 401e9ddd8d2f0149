package dto

import (
	"foligo-api/internal/application/assistant"
	wfmodel "foligo-api/internal/workflow/model"
)

// ConversationTurnDTO 单轮对话
type ConversationTurnDTO struct {
	Role string `json:"role" binding:"required,oneof=user assistant"`
	Text string `json:"text" binding:"required"`
}

// TurnRequest 对话轮次请求（调用方每次重传完整历史）
type TurnRequest struct {
	History     []ConversationTurnDTO `json:"history" binding:"required,min=1,dive"`
	Kind        string                `json:"kind,omitempty"`
	InitialInfo string                `json:"initial_info,omitempty"`
}

// ToTurns 转换为工作流层的对话历史
func (r *TurnRequest) ToTurns() []wfmodel.ConversationTurn {
	turns := make([]wfmodel.ConversationTurn, 0, len(r.History))
	for _, t := range r.History {
		turns = append(turns, wfmodel.ConversationTurn{
			Role: wfmodel.TurnRole(t.Role),
			Text: t.Text,
		})
	}
	return turns
}

// TurnResponse 对话轮次响应
type TurnResponse struct {
	Message        string   `json:"message"`
	Done           bool     `json:"done"`
	Summary        string   `json:"summary,omitempty"`
	CorrectedKind  string   `json:"corrected_kind,omitempty"`
	FetchedPostIDs []string `json:"fetched_post_ids,omitempty"`
}

// NewTurnResponse 构建对话轮次响应
func NewTurnResponse(result *assistant.TurnResult) *TurnResponse {
	return &TurnResponse{
		Message:        result.Message,
		Done:           result.Done,
		Summary:        result.Summary,
		CorrectedKind:  string(result.CorrectedKind),
		FetchedPostIDs: result.FetchedPostIDs,
	}
}

// GenerateRequest 最终生成请求
type GenerateRequest struct {
	Mode    string                `json:"mode" binding:"required,oneof=create edit"`
	Kind    string                `json:"kind,omitempty"`
	History []ConversationTurnDTO `json:"history,omitempty"`
	Summary string                `json:"summary,omitempty"`

	// ContentID 编辑模式下要改写的内容
	ContentID     string `json:"content_id,omitempty"`
	ChangeRequest string `json:"change_request,omitempty"`
}

// ToWorkflowTurns 转换为工作流层的对话历史
func (r *GenerateRequest) ToWorkflowTurns() []wfmodel.ConversationTurn {
	turns := make([]wfmodel.ConversationTurn, 0, len(r.History))
	for _, t := range r.History {
		turns = append(turns, wfmodel.ConversationTurn{
			Role: wfmodel.TurnRole(t.Role),
			Text: t.Text,
		})
	}
	return turns
}

// GenerateResponse 最终生成响应：持久化后的内容条目
type GenerateResponse struct {
	Content *ContentResponse `json:"content"`
}
