package assistant

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foligo-api/internal/workflow/chain"
	wfmodel "foligo-api/internal/workflow/model"
)

// stubFactory 返回空模型；调用全部由 scriptedCaller 接管
type stubFactory struct{}

func (stubFactory) Get(_ context.Context, _ string) (model.BaseChatModel, error) {
	return nil, nil
}

// scriptedCaller 按脚本顺序返回模型输出
type scriptedCaller struct {
	responses []string
	calls     int
}

func (c *scriptedCaller) Generate(_ context.Context, _ model.BaseChatModel, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	if c.calls >= len(c.responses) {
		return nil, fmt.Errorf("no scripted response for call %d", c.calls)
	}
	resp := c.responses[c.calls]
	c.calls++
	return schema.AssistantMessage(resp, nil), nil
}

// fakeContentReader 内存内容查找
type fakeContentReader struct {
	posts map[string]*ContentPost
}

func (f *fakeContentReader) GetPost(_ context.Context, _, postID string) (*ContentPost, error) {
	return f.posts[postID], nil
}

func newTurnHandler(responses []string, reader ContentReader) (*TurnHandler, *scriptedCaller) {
	caller := &scriptedCaller{responses: responses}
	conv := chain.NewConversationChain(stubFactory{}, caller)
	return NewTurnHandler(conv, reader), caller
}

func userTurns(texts ...string) []wfmodel.ConversationTurn {
	turns := make([]wfmodel.ConversationTurn, 0, len(texts))
	for i, text := range texts {
		role := wfmodel.RoleUser
		if i%2 == 1 {
			role = wfmodel.RoleAssistant
		}
		turns = append(turns, wfmodel.ConversationTurn{Role: role, Text: text})
	}
	return turns
}

func TestHandleTurn_Complete(t *testing.T) {
	h, _ := newTurnHandler([]string{
		`{"message":"All set, generating now.","action":"complete","summary":"Built TaskFlow, a React+Node task manager.","kind":"PROJECT"}`,
	}, nil)

	res, err := h.HandleTurn(context.Background(), &TurnInput{
		ProjectID: "p1",
		History:   userTurns("I built TaskFlow", "Tell me more", "It is a task manager in React and Node"),
		Kind:      wfmodel.KindProject,
	})
	require.NoError(t, err)

	assert.True(t, res.Done)
	assert.Equal(t, "Built TaskFlow, a React+Node task manager.", res.Summary)
	assert.Equal(t, wfmodel.KindProject, res.CorrectedKind)
	assert.Equal(t, "All set, generating now.", res.Message)
}

func TestHandleTurn_PlainTextFallback(t *testing.T) {
	// 信封解析失败时按纯文本处理，不报错
	h, _ := newTurnHandler([]string{
		"What technologies did you use?",
	}, nil)

	res, err := h.HandleTurn(context.Background(), &TurnInput{
		ProjectID: "p1",
		History:   userTurns("I made a thing"),
	})
	require.NoError(t, err)

	assert.False(t, res.Done)
	assert.Equal(t, "What technologies did you use?", res.Message)
	assert.Empty(t, res.Summary)
}

func TestHandleTurn_CompleteWithoutSummaryStaysAsking(t *testing.T) {
	h, _ := newTurnHandler([]string{
		`{"message":"Should I wrap up?","action":"complete"}`,
	}, nil)

	res, err := h.HandleTurn(context.Background(), &TurnInput{
		ProjectID: "p1",
		History:   userTurns("hello"),
	})
	require.NoError(t, err)

	assert.False(t, res.Done)
	assert.Equal(t, "Should I wrap up?", res.Message)
}

func TestHandleTurn_FetchPostFoldsAndContinues(t *testing.T) {
	reader := &fakeContentReader{posts: map[string]*ContentPost{
		"post-1": {ID: "post-1", Title: "Old Write-up", Body: "Previous project notes."},
	}}
	h, caller := newTurnHandler([]string{
		`{"message":"Let me check your existing post.","action":"fetch_post","post_id":"post-1"}`,
		`{"message":"Got it, wrapping up.","action":"complete","summary":"Updated notes on the project.","kind":"PROJECT"}`,
	}, reader)

	res, err := h.HandleTurn(context.Background(), &TurnInput{
		ProjectID: "p1",
		History:   userTurns("extend my old post"),
		Kind:      wfmodel.KindProject,
	})
	require.NoError(t, err)

	assert.True(t, res.Done)
	assert.Equal(t, []string{"post-1"}, res.FetchedPostIDs)
	assert.Equal(t, 2, caller.calls)
}

func TestHandleTurn_FetchMissingPostContinuesWithoutIt(t *testing.T) {
	reader := &fakeContentReader{posts: map[string]*ContentPost{}}
	h, caller := newTurnHandler([]string{
		`{"message":"Checking that post.","action":"fetch_post","post_id":"nope"}`,
		`{"message":"Could not find it. What was it about?","action":"none"}`,
	}, reader)

	res, err := h.HandleTurn(context.Background(), &TurnInput{
		ProjectID: "p1",
		History:   userTurns("extend my old post"),
	})
	require.NoError(t, err)

	assert.False(t, res.Done)
	assert.Empty(t, res.FetchedPostIDs)
	assert.Equal(t, 2, caller.calls)
}

func TestHandleTurn_ToolCallBudgetExhausted(t *testing.T) {
	reader := &fakeContentReader{posts: map[string]*ContentPost{
		"a": {ID: "a", Title: "A", Body: "a"},
	}}
	loop := `{"message":"Fetching again.","action":"fetch_post","post_id":"a"}`
	h, caller := newTurnHandler([]string{loop, loop, loop, loop, loop}, reader)

	res, err := h.HandleTurn(context.Background(), &TurnInput{
		ProjectID: "p1",
		History:   userTurns("go"),
	})
	require.NoError(t, err)

	assert.False(t, res.Done)
	assert.Equal(t, "Fetching again.", res.Message)
	assert.Equal(t, 4, caller.calls)
}

func TestHandleTurn_CompleteKindFallsBackToKeywords(t *testing.T) {
	// 完成指令缺 kind 且请求未声明类型时，从对话文本回退分类
	h, _ := newTurnHandler([]string{
		`{"message":"Done.","action":"complete","summary":"A summary of what was discussed."}`,
	}, nil)

	res, err := h.HandleTurn(context.Background(), &TurnInput{
		ProjectID: "p1",
		History:   userTurns("I built a small CLI during a hackathon"),
	})
	require.NoError(t, err)

	assert.True(t, res.Done)
	assert.Equal(t, wfmodel.KindProject, res.CorrectedKind)
}

func TestHandleTurn_Validation(t *testing.T) {
	h, _ := newTurnHandler(nil, nil)

	t.Run("empty history", func(t *testing.T) {
		_, err := h.HandleTurn(context.Background(), &TurnInput{ProjectID: "p1"})
		require.Error(t, err)
	})

	t.Run("last turn must be from the user", func(t *testing.T) {
		_, err := h.HandleTurn(context.Background(), &TurnInput{
			ProjectID: "p1",
			History: []wfmodel.ConversationTurn{
				{Role: wfmodel.RoleUser, Text: "hi"},
				{Role: wfmodel.RoleAssistant, Text: "hello"},
			},
		})
		require.Error(t, err)
	})
}
