package factory

import (
	"errors"
	"fmt"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/search"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/searxng"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/tavily"
)

// ErrNotConfigured 未配置任何搜索服务
var ErrNotConfigured = errors.New("search provider not configured")

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg config.SearchConfig) (search.Searcher, error) {
	// 显式配置的 provider 优先
	provider := cfg.Provider
	if provider == "" {
		// 默认回退：有 tavily key 用 tavily，其次 searxng
		switch {
		case cfg.Tavily.APIKey != "":
			provider = "tavily"
		case cfg.SearXNG.BaseURL != "":
			provider = "searxng"
		default:
			return nil, ErrNotConfigured
		}
	}

	switch provider {
	case "tavily":
		// tavily 必须提供 api key
		if cfg.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Tavily.APIKey), nil

	case "searxng":
		// 自建实例只需 base url，超时与语言可选
		if cfg.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.SearXNG.BaseURL, cfg.SearXNG.Timeout, cfg.SearXNG.Language), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
