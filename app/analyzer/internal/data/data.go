package data

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/iWorld-y/market_radar/app/analyzer/internal/conf"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Data 数据库连接；db 为 nil 表示存储不可用
type Data struct {
	db *sql.DB
}

// NewData 打开数据库并执行迁移。
// 未配置或无法连接时返回不可用的 Data，服务照常启动。
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil || c.Database == nil || c.Database.Source == "" {
		helper.Warn("未配置数据库，分析结果不会保存")
		return &Data{}, func() {}, nil
	}

	driver := c.Database.Driver
	if driver == "" {
		driver = "postgres"
	}
	db, err := sql.Open(driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		helper.Warnf("数据库连接失败，分析结果不会保存: %v", err)
		db.Close()
		return &Data{}, func() {}, nil
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}

// Available 数据库是否可用
func (d *Data) Available() bool {
	return d != nil && d.db != nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
