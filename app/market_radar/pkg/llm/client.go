package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
	dm "github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

// Client 带限流与重试的 LLM 客户端，可被多个请求并发使用
type Client struct {
	gen        Generator
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

// NewClient 创建客户端；limiter 为 nil 时不限流
func NewClient(gen Generator, limiter *rate.Limiter, maxRetries int) *Client {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Client{
		gen:        gen,
		limiter:    limiter,
		maxRetries: maxRetries,
		baseDelay:  2 * time.Second,
	}
}

// GenerateAnalysis 生成市场分析的核心章节，返回解析后的 JSON 文档
func (c *Client) GenerateAnalysis(ctx context.Context, req *dm.AnalysisRequest, searchContext, attachmentsContext string) (map[string]any, error) {
	var out map[string]any
	if err := c.completeJSON(ctx, analysisSystemPrompt, buildAnalysisPrompt(req, searchContext, attachmentsContext), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("llm returned an empty analysis")
	}
	return out, nil
}

// Summarize 基于调研材料回答查询
func (c *Client) Summarize(ctx context.Context, query, material string) (string, error) {
	user := fmt.Sprintf(summaryPromptTpl, query, material)
	return c.complete(ctx, summarySystemPrompt, user)
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
		content, err := c.gen.Generate(ctx, system, user)
		if err == nil {
			return content, nil
		}
		if !isRateLimited(err) {
			return "", err
		}
		lastErr = err
		if i < c.maxRetries {
			delay := c.baseDelay * time.Duration(1<<i)
			logger.Log.Warnf("LLM 触发限流，%s 后重试 (%d/%d)", delay, i+1, c.maxRetries)
			if err := sleep(ctx, delay); err != nil {
				return "", err
			}
		}
	}
	return "", fmt.Errorf("failed after retries: %w", lastErr)
}

// completeJSON 在 JSON 解析失败时同样重试
func (c *Client) completeJSON(ctx context.Context, system, user string, out any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		content, err := c.complete(ctx, system, user)
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(CleanJSON(content)), out); err != nil {
			lastErr = err
			logger.Log.Warnf("LLM 返回的 JSON 无法解析 (%d/%d): %v", i+1, c.maxRetries+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("json unmarshal: %w", lastErr)
}

// CleanJSON 去掉模型输出外层的 markdown 代码块标记
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "resource_exhausted")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
