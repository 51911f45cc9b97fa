package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/search"
)

func TestClient_Search(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tvly-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"query": "mercado moda",
			"answer": "O mercado cresce 8% ao ano.",
			"results": [{"title": "Moda no Brasil", "url": "https://example.com/a", "content": "resumo", "raw_content": "texto completo", "score": 0.91}]
		}`))
	}))
	defer srv.Close()

	c := NewClient("tvly-key", WithEndpoint(srv.URL))
	resp, err := c.Search(context.Background(), &search.Request{
		Query:         "mercado moda",
		MaxResults:    50,
		Advanced:      true,
		IncludeAnswer: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "advanced", got.SearchDepth)
	assert.Equal(t, "general", got.Topic)
	assert.Equal(t, 20, got.MaxResults)
	assert.True(t, got.IncludeAnswer)

	assert.Equal(t, "O mercado cresce 8% ao ano.", resp.Answer)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "texto completo", resp.Results[0].Text())
}

func TestClient_SearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	_, err := NewClient("k", WithEndpoint(srv.URL)).Search(context.Background(), &search.Request{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
