package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/llm"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

// routerRequest router 收到的请求体
type routerRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "qwen",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func TestNewClient_NotConfigured(t *testing.T) {
	_, err := NewClient(context.Background(), config.InferenceConfig{})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	_, err = NewClient(context.Background(), config.InferenceConfig{APIKey: "hf"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	var nilClient *Client
	assert.False(t, nilClient.IsAvailable())
	_, err = nilClient.AnalyzeMarketStrategy(context.Background(), &model.AnalysisRequest{Segmento: "x"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestClient_AnalyzeMarketStrategy(t *testing.T) {
	var got routerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion("Foque no interior.")))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), config.InferenceConfig{BaseURL: srv.URL + "/", APIKey: "hf-key", Model: "qwen", MaxTokens: 300})
	require.NoError(t, err)
	require.True(t, c.IsAvailable())

	out, err := c.AnalyzeMarketStrategy(context.Background(), &model.AnalysisRequest{Segmento: "moda"})
	require.NoError(t, err)

	assert.Equal(t, "Foque no interior.", out)
	assert.Equal(t, "qwen", got.Model)
	assert.Equal(t, 300, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, `"moda"`)
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "bad status", status: http.StatusServiceUnavailable, body: `{"error":{"message":"model loading"}}`, want: "huggingface inference failed"},
		{name: "blank content", status: http.StatusOK, body: completion("   "), want: "empty response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewClient(context.Background(), config.InferenceConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})
			require.NoError(t, err)
			_, err = c.AnalyzeMarketStrategy(context.Background(), &model.AnalysisRequest{Segmento: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
