package engine

import (
	"time"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/research"
)

// Options 引擎参数，创建后不再修改
type Options struct {
	MaxQueries      int
	QueryPause      time.Duration
	Research        research.Params
	ContextLimit    int
	AttachmentLimit int
	// MaxAnalysisTime 仅作为目标上限写入元数据，不强制超时
	MaxAnalysisTime time.Duration
	DeepResearch    bool
	MultiAI         bool
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		MaxQueries:      12,
		QueryPause:      2 * time.Second,
		Research:        research.Params{MaxPages: 20, Depth: 4, Aggressive: true},
		ContextLimit:    20000,
		AttachmentLimit: 20000,
		MaxAnalysisTime: 40 * time.Minute,
		DeepResearch:    true,
		MultiAI:         true,
	}
}

// OptionsFromConfig 由配置生成参数，未设置的字段使用默认值
func OptionsFromConfig(cfg *config.Config) Options {
	o := DefaultOptions()
	if cfg == nil {
		return o
	}
	if cfg.Analysis.MaxQueries > 0 {
		o.MaxQueries = cfg.Analysis.MaxQueries
	}
	o.QueryPause = config.Duration(cfg.Analysis.QueryPause, o.QueryPause)
	if cfg.Analysis.ContextLimit > 0 {
		o.ContextLimit = cfg.Analysis.ContextLimit
	}
	if cfg.Analysis.AttachmentLimit > 0 {
		o.AttachmentLimit = cfg.Analysis.AttachmentLimit
	}
	o.MaxAnalysisTime = config.Duration(cfg.Analysis.MaxAnalysisTime, o.MaxAnalysisTime)
	o.DeepResearch = config.Enabled(cfg.Analysis.DeepResearch, true)
	o.MultiAI = config.Enabled(cfg.Analysis.MultiAI, true)
	if cfg.Research.MaxPages > 0 {
		o.Research.MaxPages = cfg.Research.MaxPages
	}
	if cfg.Research.Depth > 0 {
		o.Research.Depth = cfg.Research.Depth
	}
	o.Research.Aggressive = config.Enabled(cfg.Research.Aggressive, true)
	return o
}
