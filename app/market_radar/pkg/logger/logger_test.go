package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
)

func TestCustomFormatter_Format(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "pesquisa falhou",
		Data:    logrus.Fields{"query": 3, "attempt": 1},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2024-05-01 10:30:00] [WARN] [] pesquisa falhou attempt=1 query=3\n", string(out))
}

func TestInitLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "radar.log")
	require.NoError(t, InitLogger(config.LogConfig{Level: "debug", File: path}))
	t.Cleanup(func() { Log = newDefault() })

	var buf bytes.Buffer
	Log.SetOutput(&buf)
	Log.Debug("hello")
	assert.Contains(t, buf.String(), "[DEBU]")
	assert.Contains(t, buf.String(), "logger_test.go")

	_, err := os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestInitLogger_BadLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, InitLogger(config.LogConfig{Level: "loud"}))
	t.Cleanup(func() { Log = newDefault() })
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
