package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

// PrimaryLLM 主 LLM 协作方
type PrimaryLLM interface {
	GenerateAnalysis(ctx context.Context, req *model.AnalysisRequest, searchContext, attachmentsContext string) (map[string]any, error)
}

// SecondaryInference 辅助推理协作方
type SecondaryInference interface {
	IsAvailable() bool
	AnalyzeMarketStrategy(ctx context.Context, req *model.AnalysisRequest) (string, error)
}

// AIAnalysisSet 各 AI 协作方的输出。
// Primary 失败时 Value 为基础模板，OK 为 false。
type AIAnalysisSet struct {
	Primary   Outcome[model.Document]
	Secondary Outcome[string]
	Cross     Outcome[model.Document]
}

// Count 实际产生输出的条目数
func (s *AIAnalysisSet) Count() int {
	n := 0
	if s.Primary.Value != nil {
		n++
	}
	if s.Secondary.OK {
		n++
	}
	if s.Cross.OK {
		n++
	}
	return n
}

func (e *Engine) synthesize(ctx context.Context, req *model.AnalysisRequest, cr *CollectedResearch) *AIAnalysisSet {
	set := &AIAnalysisSet{}

	if e.deps.Primary == nil {
		set.Primary = Unavailable[model.Document]("primary llm not configured")
	} else {
		searchCtx := buildSearchContext(cr, e.opts.ContextLimit)
		attachCtx := ""
		if cr.Attachments.OK {
			attachCtx = cr.Attachments.Value.CombinedContent
		}
		out, err := e.deps.Primary.GenerateAnalysis(ctx, req, searchCtx, attachCtx)
		if err != nil {
			logger.Log.Errorf("主 LLM 分析失败，使用基础模板: %v", err)
			set.Primary = Outcome[model.Document]{
				Value:  basicLLMAnalysis(req),
				Reason: fmt.Sprintf("%v (basic template substituted)", err),
			}
		} else {
			set.Primary = Available[model.Document](out)
			logger.Log.Info("主 LLM 分析完成")
		}
	}

	switch {
	case !e.opts.MultiAI:
		set.Secondary = Unavailable[string]("multi-ai disabled")
	case e.deps.Secondary == nil || !e.deps.Secondary.IsAvailable():
		set.Secondary = Unavailable[string]("secondary inference unavailable")
	default:
		text, err := e.deps.Secondary.AnalyzeMarketStrategy(ctx, req)
		switch {
		case err != nil:
			logger.Log.Warnf("辅助推理不可用: %v", err)
			set.Secondary = Unavailable[string](err.Error())
		case strings.TrimSpace(text) == "":
			set.Secondary = Unavailable[string]("empty response")
		default:
			set.Secondary = Available(text)
			logger.Log.Info("辅助推理分析完成")
		}
	}

	if set.Count() > 1 {
		set.Cross = Available(crossAnalysis())
	} else {
		set.Cross = Unavailable[model.Document]("fewer than two ai outputs")
	}
	return set
}

// buildSearchContext 拼接各查询的调研内容与要点，按 limit 截断
func buildSearchContext(cr *CollectedResearch, limit int) string {
	if !cr.WebResearch.OK {
		return ""
	}
	var sb strings.Builder
	for _, qr := range cr.WebResearch.Value {
		key := strings.ToUpper(qr.Key)
		summary := qr.Research.ResearchSummary
		fmt.Fprintf(&sb, "PESQUISA REAL %s:\n%s\n\n", key, summary.CombinedContent)
		if len(summary.KeyInsights) > 0 {
			fmt.Fprintf(&sb, "INSIGHTS REAIS %s:\n%s\n\n", key, strings.Join(summary.KeyInsights, "\n"))
		}
	}
	return clip(sb.String(), limit)
}
