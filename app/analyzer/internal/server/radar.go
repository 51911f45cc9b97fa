package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/engine"
	mrLogger "github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
)

// NewRadarToolkit 初始化分析流水线及其协作方
func NewRadarToolkit(c *config.Config, logger log.Logger) (*engine.Toolkit, error) {
	if c == nil {
		c = &config.Config{}
	}
	c.ApplyDefaults()

	if err := mrLogger.InitLogger(c.Log); err != nil {
		log.NewHelper(logger).Errorf("Failed to init market_radar logger: %v", err)
		_ = mrLogger.InitLogger(config.LogConfig{Level: "info"}) // 降级处理
	}

	tk, err := engine.NewToolkit(context.Background(), c)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init analysis engine: %v", err)
		return nil, err
	}
	return tk, nil
}
