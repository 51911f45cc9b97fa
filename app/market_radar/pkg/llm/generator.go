package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
)

// ErrNotConfigured 未配置 LLM
var ErrNotConfigured = errors.New("llm not configured")

// Generator 单轮对话补全
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// NewGenerator 根据 provider 创建底层模型
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	if cfg.APIKey == "" || cfg.Model == "" {
		return nil, ErrNotConfigured
	}
	switch cfg.Provider {
	case "", "openai":
		mc := &openai.ChatModelConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
		}
		// 0 表示沿用服务端默认上限
		if cfg.MaxTokens > 0 {
			maxTokens := cfg.MaxTokens
			mc.MaxTokens = &maxTokens
		}
		cm, err := openai.NewChatModel(ctx, mc)
		if err != nil {
			return nil, fmt.Errorf("LLM 初始化失败: %w", err)
		}
		return &chatModelGenerator{cm: cm}, nil
	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini 初始化失败: %w", err)
		}
		return &geminiGenerator{client: client, model: cfg.Model}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// chatModelGenerator 基于 eino ChatModel（OpenAI 兼容接口）
type chatModelGenerator struct {
	cm model.ChatModel
}

func (g *chatModelGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}
	resp, err := g.cm.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// geminiGenerator 基于 Google genai SDK
type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned empty response")
	}
	return text, nil
}
