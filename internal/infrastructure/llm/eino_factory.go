// Package llm 提供基于 Eino 的大模型客户端封装
package llm

import (
	"context"
	"fmt"
	"sync"

	"foligo-api/internal/config"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// 逻辑模型名：fast 用于对话轮次/分类/抽取，quality 用于正文生成
const (
	ModelFast    = "fast"
	ModelQuality = "quality"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// resolve 将逻辑模型名解析为提供商名
func (f *EinoFactory) resolve(name string) string {
	switch name {
	case ModelFast, "":
		return f.config.FastProvider
	case ModelQuality:
		return f.config.QualityProvider
	default:
		return name
	}
}

// Get 获取指定名称的 ChatModel（支持逻辑名 fast/quality 和提供商名）
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	name = f.resolve(name)

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	// 使用 Eino 的 OpenAI 适配器
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      providerCfg.APIKey,
		BaseURL:     providerCfg.BaseURL,
		Model:       providerCfg.Model,
		MaxTokens:   &providerCfg.MaxTokens,
		Temperature: ptrFloat32(float32(providerCfg.Temperature)),
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// Fast 返回快速模型
func (f *EinoFactory) Fast(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, ModelFast)
}

// Quality 返回高质量模型
func (f *EinoFactory) Quality(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, ModelQuality)
}

func ptrFloat32(f float32) *float32 {
	return &f
}
