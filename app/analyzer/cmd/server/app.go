package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/market_radar/app/analyzer/internal/biz"
	"github.com/iWorld-y/market_radar/app/analyzer/internal/conf"
	"github.com/iWorld-y/market_radar/app/analyzer/internal/data"
	"github.com/iWorld-y/market_radar/app/analyzer/internal/server"
	"github.com/iWorld-y/market_radar/app/analyzer/internal/service"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
)

// initApp 按依赖顺序手工装配服务
func initApp(s *conf.Server, d *conf.Data, radar *config.Config, logger log.Logger) (*kratos.App, func(), error) {
	dataData, cleanup, err := data.NewData(d, logger)
	if err != nil {
		return nil, nil, err
	}
	toolkit, err := server.NewRadarToolkit(radar, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	repo := data.NewAnalysisRepo(dataData, logger)
	uc := biz.NewAnalysisUseCase(toolkit.Engine, repo, logger)
	svc := service.NewAnalysisService(uc, toolkit.Attachments, toolkit.DeepSearch, logger)
	hs := server.NewHTTPServer(s, svc, logger)
	return newApp(logger, hs), cleanup, nil
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
