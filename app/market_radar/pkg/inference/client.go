package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/llm"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

const defaultBaseURL = "https://router.huggingface.co/v1"

const systemPrompt = "Você é um consultor de estratégia de mercado."

// Client Hugging Face router 客户端，router 兼容 OpenAI 接口，复用 eino ChatModel
type Client struct {
	gen llm.Generator
}

// NewClient 创建辅助推理客户端，未配置密钥或模型时返回 llm.ErrNotConfigured
func NewClient(ctx context.Context, cfg config.InferenceConfig) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	gen, err := llm.NewGenerator(ctx, config.LLMConfig{
		Provider:  "openai",
		BaseURL:   baseURL,
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Client{gen: gen}, nil
}

// IsAvailable 底层模型已创建时可用
func (c *Client) IsAvailable() bool {
	return c != nil && c.gen != nil
}

// AnalyzeMarketStrategy 请求一份补充性的市场策略意见
func (c *Client) AnalyzeMarketStrategy(ctx context.Context, req *model.AnalysisRequest) (string, error) {
	if !c.IsAvailable() {
		return "", llm.ErrNotConfigured
	}
	prompt := fmt.Sprintf(
		"Analise a estratégia de mercado para o segmento %q (produto: %q, público: %q). "+
			"Liste oportunidades, riscos e três recomendações práticas para o mercado brasileiro.",
		req.Segmento, req.Produto, req.Publico,
	)
	text, err := c.gen.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("huggingface inference failed: %w", err)
	}
	// 空回复视为失败
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response from huggingface router")
	}
	return text, nil
}
