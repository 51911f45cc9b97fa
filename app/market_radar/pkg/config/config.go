package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Inference   InferenceConfig   `yaml:"inference" json:"inference"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	Research    ResearchConfig    `yaml:"research" json:"research"`
	Analysis    AnalysisConfig    `yaml:"analysis" json:"analysis"`
	Attachment  AttachmentConfig  `yaml:"attachment" json:"attachment"`
	Log         LogConfig         `yaml:"log" json:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
}

// LLMConfig 主 LLM 配置，provider 支持 openai（兼容接口）与 gemini
type LLMConfig struct {
	Provider   string `yaml:"provider" json:"provider"`
	BaseURL    string `yaml:"base_url" json:"base_url"`
	APIKey     string `yaml:"api_key" json:"api_key"`
	Model      string `yaml:"model" json:"model"`
	MaxRetries int    `yaml:"max_retries" json:"max_retries"`
	MaxTokens  int    `yaml:"max_tokens" json:"max_tokens"`
}

// InferenceConfig 辅助推理服务（Hugging Face router）配置
type InferenceConfig struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	APIKey    string `yaml:"api_key" json:"api_key"`
	Model     string `yaml:"model" json:"model"`
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider" json:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily" json:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng" json:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key" json:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL  string `yaml:"base_url" json:"base_url"`
	Timeout  int    `yaml:"timeout" json:"timeout"`
	Language string `yaml:"language" json:"language"`
}

// ResearchConfig 网页调研参数
type ResearchConfig struct {
	MaxPages    int    `yaml:"max_pages" json:"max_pages"`
	Depth       int    `yaml:"depth" json:"depth"`
	Aggressive  *bool  `yaml:"aggressive" json:"aggressive"`
	PageTimeout string `yaml:"page_timeout" json:"page_timeout"`
	PageLimit   int    `yaml:"page_limit" json:"page_limit"`
}

// AnalysisConfig 分析流程参数
type AnalysisConfig struct {
	MaxQueries      int    `yaml:"max_queries" json:"max_queries"`
	QueryPause      string `yaml:"query_pause" json:"query_pause"`
	ContextLimit    int    `yaml:"context_limit" json:"context_limit"`
	AttachmentLimit int    `yaml:"attachment_limit" json:"attachment_limit"`
	MaxAnalysisTime string `yaml:"max_analysis_time" json:"max_analysis_time"`
	DeepResearch    *bool  `yaml:"deep_research" json:"deep_research"`
	MultiAI         *bool  `yaml:"multi_ai" json:"multi_ai"`
}

// AttachmentConfig 附件服务配置
type AttachmentConfig struct {
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	TTL       string `yaml:"ttl" json:"ttl"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps" json:"qps"`
	RPM int `yaml:"rpm" json:"rpm"`
}

// LoadConfig 从指定路径加载配置，并补齐默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.expandEnv()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandEnv 密钥与地址支持 ${VAR} 形式引用环境变量
func (c *Config) expandEnv() {
	for _, p := range []*string{
		&c.LLM.APIKey, &c.LLM.BaseURL,
		&c.Inference.APIKey, &c.Inference.BaseURL,
		&c.Search.Tavily.APIKey, &c.Search.SearXNG.BaseURL,
	} {
		*p = os.ExpandEnv(*p)
	}
}

// ApplyDefaults 为未设置的字段填充默认值
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.MaxRetries <= 0 {
		c.LLM.MaxRetries = 3
	}
	if c.Inference.MaxTokens <= 0 {
		c.Inference.MaxTokens = 800
	}
	if c.Research.MaxPages <= 0 {
		c.Research.MaxPages = 20
	}
	if c.Research.Depth <= 0 {
		c.Research.Depth = 4
	}
	if c.Research.Aggressive == nil {
		c.Research.Aggressive = boolPtr(true)
	}
	if c.Research.PageTimeout == "" {
		c.Research.PageTimeout = "30s"
	}
	if c.Research.PageLimit <= 0 {
		c.Research.PageLimit = 5000
	}
	if c.Analysis.MaxQueries <= 0 {
		c.Analysis.MaxQueries = 12
	}
	if c.Analysis.QueryPause == "" {
		c.Analysis.QueryPause = "2s"
	}
	if c.Analysis.ContextLimit <= 0 {
		c.Analysis.ContextLimit = 20000
	}
	if c.Analysis.AttachmentLimit <= 0 {
		c.Analysis.AttachmentLimit = 20000
	}
	if c.Analysis.MaxAnalysisTime == "" {
		c.Analysis.MaxAnalysisTime = "40m"
	}
	if c.Analysis.DeepResearch == nil {
		c.Analysis.DeepResearch = boolPtr(true)
	}
	if c.Analysis.MultiAI == nil {
		c.Analysis.MultiAI = boolPtr(true)
	}
	if c.Attachment.MaxSizeMB <= 0 {
		c.Attachment.MaxSizeMB = 10
	}
	if c.Attachment.TTL == "" {
		c.Attachment.TTL = "1h"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
}

// Validate 检查配置中的时长等字段是否可解析
func (c *Config) Validate() error {
	var errs []error
	for name, v := range map[string]string{
		"research.page_timeout":      c.Research.PageTimeout,
		"analysis.query_pause":       c.Analysis.QueryPause,
		"analysis.max_analysis_time": c.Analysis.MaxAnalysisTime,
		"attachment.ttl":             c.Attachment.TTL,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	switch c.LLM.Provider {
	case "", "openai", "gemini":
	default:
		errs = append(errs, fmt.Errorf("llm.provider: unknown provider %q", c.LLM.Provider))
	}
	return errors.Join(errs...)
}

// Duration 解析时长字符串，为空或非法时返回 def
func Duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// Enabled 读取可选布尔开关，未设置时返回 def
func Enabled(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func boolPtr(b bool) *bool { return &b }
