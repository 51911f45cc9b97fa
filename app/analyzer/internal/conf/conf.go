package conf

import "github.com/iWorld-y/market_radar/app/market_radar/pkg/config"

type Bootstrap struct {
	Server *Server
	Data   *Data
	Radar  *config.Config
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr string
	// Timeout 为 0s 时不设置请求超时
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}
