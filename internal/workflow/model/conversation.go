package model

// TurnRole 对话角色
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// ConversationTurn 单轮对话
// 历史一旦追加不再修改，调用方每次传入完整历史。
type ConversationTurn struct {
	Role TurnRole `json:"role"`
	Text string   `json:"text"`
}

// ConversationTurnInput 对话轮次链输入
type ConversationTurnInput struct {
	// History 按时间序的完整对话历史（链内部只取最近窗口）
	History []ConversationTurn

	// Kind 当前推断的内容类型（可能为空）
	Kind ContentKind

	// InitialInfo 已知信息摘要
	InitialInfo string

	// ContextBlock 上下文构建器产出的作者画像文本
	ContextBlock string
}

// TurnAction 指令动作
type TurnAction string

const (
	ActionNone      TurnAction = "none"
	ActionFetchPost TurnAction = "fetch_post"
	ActionComplete  TurnAction = "complete"
)

// TurnDirective 模型回复中的机器可读指令信封
// 解析失败时整段回复按纯文本处理。
type TurnDirective struct {
	Message string     `json:"message"`
	Action  TurnAction `json:"action"`
	PostID  string     `json:"post_id,omitempty"`
	Summary string     `json:"summary,omitempty"`
	Kind    string     `json:"kind,omitempty"`
}

// ClassifyInput 类型分类链输入
type ClassifyInput struct {
	ConversationText string
	InitialInfo      string
}
