package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/engine"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "market_radar",
	Short:        "Market Radar: análise de mercado a partir da linha de comando",
	Long:         "Executa o pipeline de análise (pesquisa web, LLM, consolidação e pontuação) sem o servidor HTTP.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "app/market_radar/configs/config.yaml", "config path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadToolkit 加载配置、初始化日志并装配流水线
func loadToolkit(ctx context.Context) (*engine.Toolkit, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := logger.InitLogger(cfg.Log); err != nil {
		return nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	return engine.NewToolkit(ctx, cfg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
