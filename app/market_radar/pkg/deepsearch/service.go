package deepsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/research"
)

const maxMaterial = 20000

// Researcher 网页调研能力
type Researcher interface {
	IsAvailable() bool
	NavigateAndResearch(ctx context.Context, query string, rc research.Context, p research.Params) (*model.WebResearch, error)
}

// Summarizer 基于材料生成摘要
type Summarizer interface {
	Summarize(ctx context.Context, query, material string) (string, error)
}

// Service 深度搜索：调研一条查询并由 LLM 汇总
type Service struct {
	agent      Researcher
	summarizer Summarizer
	params     research.Params
}

// NewService 创建深度搜索服务，summarizer 可为 nil
func NewService(agent Researcher, summarizer Summarizer, params research.Params) *Service {
	return &Service{agent: agent, summarizer: summarizer, params: params}
}

// PerformDeepSearch 执行深度搜索
func (s *Service) PerformDeepSearch(ctx context.Context, query string, qctx map[string]any) (*model.DeepSearchResult, error) {
	if s.agent == nil || !s.agent.IsAvailable() {
		return nil, research.ErrUnavailable
	}
	rc := research.Context{
		Segmento: str(qctx["segmento"]),
		Produto:  str(qctx["produto"]),
		Publico:  str(qctx["publico"]),
	}
	wr, err := s.agent.NavigateAndResearch(ctx, query, rc, s.params)
	if err != nil {
		return nil, fmt.Errorf("deep search: %w", err)
	}

	material := excerpt(wr.ResearchSummary.CombinedContent, maxMaterial)
	summary := ""
	if s.summarizer != nil && material != "" {
		summary, err = s.summarizer.Summarize(ctx, query, material)
		if err != nil {
			logger.Log.Warnf("深度搜索摘要失败 [%s]: %v", query, err)
			summary = ""
		}
	}
	if summary == "" {
		summary = excerpt(material, 2000)
	}

	return &model.DeepSearchResult{
		Query:        query,
		Summary:      summary,
		KeyInsights:  wr.ResearchSummary.KeyInsights,
		Sources:      wr.Sources,
		PagesVisited: wr.PagesVisited,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
