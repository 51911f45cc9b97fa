package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
llm:
  base_url: https://api.example.com/v1
  api_key: sk-test
  model: gpt-4o-mini
search:
  provider: searxng
  searxng:
    base_url: http://localhost:8080
analysis:
  query_pause: 500ms
research:
  aggressive: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, "searxng", cfg.Search.Provider)
	assert.Equal(t, 12, cfg.Analysis.MaxQueries)
	assert.Equal(t, 20000, cfg.Analysis.ContextLimit)
	assert.Equal(t, 20, cfg.Research.MaxPages)
	assert.Equal(t, 4, cfg.Research.Depth)
	assert.False(t, Enabled(cfg.Research.Aggressive, true))
	assert.True(t, Enabled(cfg.Analysis.MultiAI, false))
	assert.Equal(t, 500*time.Millisecond, Duration(cfg.Analysis.QueryPause, time.Second))
	assert.Equal(t, 40*time.Minute, Duration(cfg.Analysis.MaxAnalysisTime, 0))
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  query_pause: soon\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.query_pause")
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Provider: "claude"}}
	cfg.ApplyDefaults()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider")
}

func TestDuration_Fallback(t *testing.T) {
	assert.Equal(t, 2*time.Second, Duration("", 2*time.Second))
	assert.Equal(t, 2*time.Second, Duration("bogus", 2*time.Second))
	assert.Equal(t, time.Duration(0), Duration("0s", 2*time.Second))
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("MR_TEST_TAVILY_KEY", "tvly-123")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  tavily:\n    api_key: ${MR_TEST_TAVILY_KEY}\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tvly-123", cfg.Search.Tavily.APIKey)
}
