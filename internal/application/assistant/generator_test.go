package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foligo-api/internal/workflow/chain"
	wfmodel "foligo-api/internal/workflow/model"
)

func newGenerator(responses []string) (*Generator, *scriptedCaller) {
	caller := &scriptedCaller{responses: responses}
	gen := chain.NewGenerateChain(stubFactory{}, caller)
	ext := chain.NewExtractChain(stubFactory{}, caller)
	return NewGenerator(gen, ext), caller
}

func TestGenerate_ProjectPostProcessing(t *testing.T) {
	rawBody := "Here is the project write-up you asked for:\n\n" +
		"# TaskFlow\n\n" +
		"## Overview\n\nTaskFlow is a task manager built with React and Node.\n\n" +
		"```json\n{\"skills\":[{\"name\":\"React\"},{\"name\":\"Node.js\"}],\"tags\":[{\"name\":\"productivity\"}]}\n```"

	meta := `{"title":"ignored","excerpt":"A task manager for small teams.","projectLinks":{"github":"","devpost":"","other":""}}`

	g, caller := newGenerator([]string{rawBody, "TaskFlow", meta})

	out, err := g.Generate(context.Background(), &GenerateRequest{
		Mode: wfmodel.ModeCreate,
		Kind: wfmodel.KindProject,
		History: []wfmodel.ConversationTurn{
			{Role: wfmodel.RoleUser, Text: "I built TaskFlow, code at github.com/x/taskflow"},
		},
		Summary: "Built TaskFlow, a React+Node task manager.",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, caller.calls)

	// 前言、游离 H1、实体围栏块都不应留在正文里
	assert.False(t, strings.HasPrefix(out.Body, "# "))
	assert.NotContains(t, out.Body, "Here is the project")
	assert.NotContains(t, out.Body, "```")
	assert.True(t, strings.HasPrefix(out.Body, "## Overview"))

	assert.Equal(t, "TaskFlow", out.Title)
	assert.Equal(t, "A task manager for small teams.", out.Excerpt)

	require.Len(t, out.Skills, 2)
	assert.Equal(t, "React", out.Skills[0].Name)
	require.Len(t, out.Tags, 1)

	var data wfmodel.ProjectData
	require.NoError(t, json.Unmarshal(out.StructuredData, &data))
	assert.Equal(t, "TaskFlow", data.Title)
	// 元数据没给仓库链接时从对话文本正则兜底
	assert.Equal(t, "https://github.com/x/taskflow", data.ProjectLinks.Github)
	assert.Equal(t, []string{"React", "Node.js"}, data.Skills)
	assert.Equal(t, []string{"productivity"}, data.Tags)
}

func TestGenerate_ShortTitleUsesFallback(t *testing.T) {
	g, _ := newGenerator([]string{
		"Some body text about a project.",
		"AI", // 2 个字符，低于最短标题长度
		`{}`,
	})

	out, err := g.Generate(context.Background(), &GenerateRequest{
		Mode:    wfmodel.ModeCreate,
		Kind:    wfmodel.KindProject,
		History: []wfmodel.ConversationTurn{{Role: wfmodel.RoleUser, Text: "hi"}},
		Summary: "summary",
	})
	require.NoError(t, err)
	assert.Equal(t, "Untitled Project", out.Title)
}

func TestGenerate_BlogSkipsMetaExtraction(t *testing.T) {
	g, caller := newGenerator([]string{
		"Thoughts on team communication.\n\nLonger paragraph here.",
		"On Team Communication",
	})

	out, err := g.Generate(context.Background(), &GenerateRequest{
		Mode:    wfmodel.ModeCreate,
		Kind:    wfmodel.KindBlog,
		History: []wfmodel.ConversationTurn{{Role: wfmodel.RoleUser, Text: "write about communication"}},
		Summary: "summary",
	})
	require.NoError(t, err)

	// BLOG 只有正文和标题两次调用，没有元数据抽取
	assert.Equal(t, 2, caller.calls)
	assert.Equal(t, "On Team Communication", out.Title)

	var data wfmodel.BlogData
	require.NoError(t, json.Unmarshal(out.StructuredData, &data))
	assert.Equal(t, "On Team Communication", data.Title)
}

func TestGenerate_ExcerptDerivedFromBody(t *testing.T) {
	g, _ := newGenerator([]string{
		"First sentence of the post.\nSecond line continues.",
		"A Fine Title",
	})

	out, err := g.Generate(context.Background(), &GenerateRequest{
		Mode:    wfmodel.ModeCreate,
		Kind:    wfmodel.KindBlog,
		History: []wfmodel.ConversationTurn{{Role: wfmodel.RoleUser, Text: "go"}},
		Summary: "summary",
	})
	require.NoError(t, err)
	assert.Equal(t, "First sentence of the post. Second line continues.", out.Excerpt)
}

func TestGenerate_InvalidInput(t *testing.T) {
	g, _ := newGenerator(nil)

	t.Run("nil request", func(t *testing.T) {
		_, err := g.Generate(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := g.Generate(context.Background(), &GenerateRequest{
			Mode: wfmodel.ModeCreate,
			Kind: wfmodel.ContentKind("POEM"),
		})
		require.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := g.Generate(context.Background(), &GenerateRequest{
			Mode: wfmodel.GenerateMode("rewrite"),
			Kind: wfmodel.KindBlog,
		})
		require.Error(t, err)
	})
}
