package data

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/app/analyzer/internal/biz"
	"github.com/iWorld-y/market_radar/app/analyzer/internal/conf"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "abc", cleanText("a\x00b\x00c"))
	assert.Equal(t, "olá", cleanText("ol\xffá"))
	assert.Equal(t, "saúde", cleanText("saúde"))
}

func TestNullText(t *testing.T) {
	assert.Nil(t, nullText(""))
	assert.Nil(t, nullText("\x00"))
	assert.Equal(t, "moda", nullText("moda"))
}

func TestJSONB(t *testing.T) {
	b, err := jsonb(map[string]any{"nome": "a\x00b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nome":"ab"}`, string(b))

	b, err = jsonb(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestJSONB_EscapedBackslashBeforeU0000(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "literal text only", in: map[string]any{"x": `C:\u0000dir`}, want: `{"x":"C:\\u0000dir"}`},
		{name: "literal text and nul", in: map[string]any{"x": "C:\\u0000dir\x00", "k\x00": []any{"a\x00", 1.5}}, want: `{"x":"C:\\u0000dir","k":["a",1.5]}`},
		{name: "struct values", in: struct {
			Content string `json:"content"`
			Count   int    `json:"count"`
		}{Content: "page\x00 with \\u0000", Count: 3}, want: `{"content":"page with \\u0000","count":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := jsonb(tt.in)
			require.NoError(t, err)
			assert.True(t, json.Valid(b), string(b))
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestNewData_UnconfiguredIsUnavailable(t *testing.T) {
	d, cleanup, err := NewData(&conf.Data{Database: &conf.Database{Driver: "postgres"}}, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()
	assert.False(t, d.Available())

	repo := NewAnalysisRepo(d, log.DefaultLogger)
	assert.False(t, repo.Available())

	_, err = repo.GetAnalysis(context.Background(), 1)
	assert.ErrorIs(t, err, biz.ErrAnalysisNotFound)

	list, err := repo.ListAnalyses(context.Background(), biz.ListFilter{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.CreateAnalysis(context.Background(), &biz.AnalysisRecord{Nicho: "moda"})
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	content, err := migrations.ReadFile("migrations/" + entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- +goose Up")
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS analyses")
}
