package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequest(t *testing.T) {
	raw, err := readRequest(strings.NewReader(`{"segmento":"moda","preco":"99,90"}`), "-")
	require.NoError(t, err)
	assert.Equal(t, "moda", raw["segmento"])

	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"segmento":"pets"}`), 0o644))
	raw, err = readRequest(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "pets", raw["segmento"])

	raw, err = readRequest(strings.NewReader(""), "-")
	require.NoError(t, err)
	assert.Nil(t, raw)

	_, err = readRequest(strings.NewReader("{"), "-")
	assert.Error(t, err)
}

func TestAnalyzeCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("analysis:\n  query_pause: 0s\n"), 0o644))
	out := filepath.Join(dir, "out.json")

	rootCmd.SetIn(strings.NewReader(`{"segmento":"moda","objetivo_receita":"50000,50"}`))
	rootCmd.SetArgs([]string{"analyze", "-c", cfgPath, "-o", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "R$ 7,500 - R$ 12,500")
	assert.Contains(t, string(data), `"metadata"`)
}
