package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

const engineName = "Market Radar Ultra-Robust Engine"

// Dependencies 引擎的外部协作方，任一项为 nil 时视为不可用
type Dependencies struct {
	Attachments AttachmentSource
	Research    WebResearcher
	Primary     PrimaryLLM
	Secondary   SecondaryInference
}

// Engine 分析流水线：收集 → 合成 → 汇总 → 评分，失败时降级为应急文档
type Engine struct {
	opts Options
	deps Dependencies
	now  func() time.Time
}

// NewEngine 创建引擎
func NewEngine(opts Options, deps Dependencies) *Engine {
	return &Engine{opts: opts, deps: deps, now: time.Now}
}

// Options 返回引擎参数的副本
func (e *Engine) Options() Options {
	return e.opts
}

// Analyze 执行一次完整分析，总是返回文档；
// 内部错误或 panic 都会转为应急文档。
func (e *Engine) Analyze(ctx context.Context, req *model.AnalysisRequest) (doc model.Document) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("分析过程 panic: %v\n%s", r, debug.Stack())
			doc = Fallback(req, fmt.Errorf("panic: %v", r))
		}
	}()

	doc, err := e.run(ctx, req)
	if err != nil {
		logger.Log.Errorf("分析失败，生成应急文档: %v", err)
		return Fallback(req, err)
	}
	return doc
}

func (e *Engine) run(ctx context.Context, req *model.AnalysisRequest) (model.Document, error) {
	if req == nil {
		return nil, model.ErrEmptyBody
	}
	start := e.now()
	logger.Log.Infof("开始分析: 细分市场=%s", req.Segmento)

	cr, err := e.collect(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	ai := e.synthesize(ctx, req, cr)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	doc := consolidate(req, cr, ai)

	elapsed := e.now().Sub(start)
	secs := int(elapsed.Seconds())
	quality := QualityScore(doc)
	completeness := CompletenessScore(doc)

	doc[model.KeyMetadata] = obj{
		"processing_time_seconds":   elapsed.Seconds(),
		"processing_time_formatted": fmt.Sprintf("%dm %ds", secs/60, secs%60),
		"analysis_engine":           engineName,
		"data_sources_used":         len(cr.Sources),
		"ai_models_used":            ai.Count(),
		"generated_at":              e.now().UTC().Format(time.RFC3339),
		"quality_score":             quality,
		"completeness_score":        completeness,
		"research_iterations":       cr.ResearchIterations,
		"total_content_analyzed":    cr.TotalContentLength,
		"unique_insights_generated": countItems(doc[model.KeyInsights]),
		"real_data_guarantee":       true,
		"max_analysis_time_seconds": int(e.opts.MaxAnalysisTime.Seconds()),
		"stage_outcomes": []StageOutcome{
			stageOf("attachments", cr.Attachments),
			stageOf("web_research", cr.WebResearch),
			stageOf("primary_llm", ai.Primary),
			stageOf("secondary_inference", ai.Secondary),
			stageOf("cross_analysis", ai.Cross),
		},
	}

	logger.Log.Infof("分析完成: 用时 %s, 质量 %.1f, 完整度 %.0f%%", elapsed.Round(time.Second), quality, completeness)
	return doc, nil
}
