package engine

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/attachment"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/deepsearch"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/inference"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/llm"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/research"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/search/factory"
)

// Toolkit 进程内共享的分析组件
type Toolkit struct {
	Engine      *Engine
	Attachments *attachment.Service
	DeepSearch  *deepsearch.Service
}

// NewToolkit 按配置装配全部协作方。
// 搜索或 LLM 未配置时只记录警告，对应阶段在分析中标记为不可用。
func NewToolkit(ctx context.Context, cfg *config.Config) (*Toolkit, error) {
	if cfg == nil {
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := OptionsFromConfig(cfg)

	attachments := attachment.NewService(cfg.Attachment.MaxSizeMB, config.Duration(cfg.Attachment.TTL, 0))

	searcher, err := factory.NewSearcher(cfg.Search)
	if err != nil {
		logger.Log.Warnf("搜索服务不可用: %v", err)
	}
	agent := research.NewAgent(searcher,
		config.Duration(cfg.Research.PageTimeout, 0),
		research.WithPageLimit(cfg.Research.PageLimit),
		research.WithLanguage(cfg.Search.SearXNG.Language),
	)

	deps := Dependencies{
		Attachments: attachments,
		Research:    agent,
	}

	secondary, err := inference.NewClient(ctx, cfg.Inference)
	if err != nil {
		logger.Log.Warnf("辅助推理不可用: %v", err)
	} else {
		deps.Secondary = secondary
	}

	var summarizer deepsearch.Summarizer
	gen, err := llm.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		logger.Log.Warnf("主 LLM 不可用: %v", err)
	} else {
		limiter := rate.NewLimiter(rate.Limit(float64(cfg.Concurrency.RPM)/60), max(cfg.Concurrency.QPS, 1))
		client := llm.NewClient(gen, limiter, cfg.LLM.MaxRetries)
		deps.Primary = client
		summarizer = client
	}

	return &Toolkit{
		Engine:      NewEngine(opts, deps),
		Attachments: attachments,
		DeepSearch:  deepsearch.NewService(agent, summarizer, opts.Research),
	}, nil
}
