package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptConversationTurnV1      PromptID = "conversation_turn_v1"
	PromptClassifyKindV1          PromptID = "classify_kind_v1"
	PromptGenerateProjectV1       PromptID = "generate_project_v1"
	PromptGenerateExperienceV1    PromptID = "generate_experience_v1"
	PromptGenerateBlogV1          PromptID = "generate_blog_v1"
	PromptGenerateSkillV1         PromptID = "generate_skill_v1"
	PromptEditContentV1           PromptID = "edit_content_v1"
	PromptExtractTitleV1          PromptID = "extract_title_v1"
	PromptExtractProjectMetaV1    PromptID = "extract_project_meta_v1"
	PromptExtractExperienceMetaV1 PromptID = "extract_experience_meta_v1"
)

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

// ChatTemplate 按 ID 取模板（system + user 两段，惰性加载后缓存）
func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	if !knownPrompt(id) {
		return nil, fmt.Errorf("unknown prompt id: %s", id)
	}

	system, err := readEmbeddedText(fmt.Sprintf("templates/%s.system.txt", id))
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText(fmt.Sprintf("templates/%s.user.txt", id))
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

func knownPrompt(id PromptID) bool {
	switch id {
	case PromptConversationTurnV1,
		PromptClassifyKindV1,
		PromptGenerateProjectV1,
		PromptGenerateExperienceV1,
		PromptGenerateBlogV1,
		PromptGenerateSkillV1,
		PromptEditContentV1,
		PromptExtractTitleV1,
		PromptExtractProjectMetaV1,
		PromptExtractExperienceMetaV1:
		return true
	default:
		return false
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
